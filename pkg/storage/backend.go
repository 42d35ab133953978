package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	Path         string
	Size         int64
	ModTime      time.Time
	IsDir        bool
	RelativePath string
}

// Backend defines the interface for filesystem access during a
// comparison run. Implementations are rooted at a single directory;
// all paths are relative to that root.
type Backend interface {
	// List returns the immediate children of the specified directory.
	// It does not descend; traversal is driven by the caller's work-list.
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// RemoveAll removes a path and any children it contains
	RemoveAll(ctx context.Context, path string) error

	// Root returns the absolute root directory of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
