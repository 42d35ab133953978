package compare

import (
	"context"

	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/storage"
)

// Comparison holds the result of comparing one generated file against
// its baseline counterpart
type Comparison struct {
	ActualPath   string
	BaselinePath string
	Outcome      models.Outcome
	Reason       string

	// Diagnostics holds the line-level warnings produced on mismatch
	Diagnostics []models.Diagnostic
}

// Comparator defines the interface for file comparison policies
type Comparator interface {
	// Compare classifies the pair (generated file, baseline file).
	// Paths are relative to their respective backend roots.
	Compare(ctx context.Context, actual, baseline storage.Backend, actualPath, baselinePath string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}
