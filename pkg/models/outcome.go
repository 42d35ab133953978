package models

// Outcome classifies a single file comparison
type Outcome string

const (
	// OutcomeIdentical means the generated file matched its baseline
	OutcomeIdentical Outcome = "identical"
	// OutcomeMismatch means the contents differed
	OutcomeMismatch Outcome = "content-mismatch"
	// OutcomeMissingBaseline means no baseline exists for the file
	OutcomeMissingBaseline Outcome = "missing-baseline"
)

// PathStatus is the per-path verdict recorded in the run report
type PathStatus string

const (
	// StatusMatched means the generated file is identical to its baseline
	StatusMatched PathStatus = "matched"
	// StatusMismatched means the file differs from its baseline
	StatusMismatched PathStatus = "mismatched"
	// StatusMissing means the file has no baseline
	StatusMissing PathStatus = "missing"
)

// Diagnostic is one human-readable finding tied to a path
type Diagnostic struct {
	RelativePath string `json:"relative_path"`
	Message      string `json:"message"`
}

// FileStatus is the canonical comparison record for one generated file
type FileStatus struct {
	RelativePath string       `json:"relative_path"`
	Status       PathStatus   `json:"status"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty"`
}
