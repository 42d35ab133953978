package models

import (
	"time"
)

// Fixture describes one generator invocation and the baseline tree its
// output is verified against
type Fixture struct {
	ID          string
	Generator   string   // Path to the generator executable
	ProtoFiles  []string // Proto files passed to the generator
	IncludeDirs []string // Import directories passed as -I flags
	OutputDir   string   // Directory the generator writes into
	BaselineDir string   // Root of the baseline expectation tree

	// Optional generator flags
	MainService       string
	GRPCServiceConfig string
	PackageName       string
	Template          string
	BundleConfig      string

	Timeout         time.Duration // 0 = no timeout
	ExcludePatterns []string
	CreatedAt       time.Time
}

// Validate checks if the fixture is runnable
func (f *Fixture) Validate() error {
	if f.Generator == "" {
		return &ValidationError{Field: "Generator", Message: "generator executable is required"}
	}
	if len(f.ProtoFiles) == 0 {
		return &ValidationError{Field: "ProtoFiles", Message: "at least one proto file is required"}
	}
	if f.OutputDir == "" {
		return &ValidationError{Field: "OutputDir", Message: "output directory is required"}
	}
	if f.BaselineDir == "" {
		return &ValidationError{Field: "BaselineDir", Message: "baseline directory is required"}
	}
	if f.Timeout < 0 {
		return &ValidationError{Field: "Timeout", Message: "timeout cannot be negative"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
