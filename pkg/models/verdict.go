package models

import (
	"time"
)

// Verdict aggregates the per-file outcomes of one comparison run
type Verdict struct {
	Pass bool

	// Per-file records for every generated file that was compared
	Statuses []FileStatus

	// Baseline paths that no generated file satisfied
	Unmatched []string

	// Findings worth surfacing even on a passing run
	Warnings []Diagnostic

	// Counters
	FilesCompared   int
	FilesMatched    int
	FilesMismatched int
	FilesMissing    int
	FilesUnmatched  int
}

// RunReport represents the results of one harness run
type RunReport struct {
	FixtureID   string
	OutputDir   string
	BaselineDir string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Verdict Verdict

	// Combined stdout/stderr of the generator process
	GeneratorOutput string

	// Overall status
	Status RunStatus
}

// RunStatus represents the overall result of a harness run
type RunStatus string

const (
	// StatusPass indicates every file matched its baseline
	StatusPass RunStatus = "pass"
	// StatusFail indicates at least one discrepancy was found
	StatusFail RunStatus = "fail"
	// StatusError indicates the run aborted before a verdict
	StatusError RunStatus = "error"
)

// ExitCode returns the appropriate exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusPass:
		return 0
	case StatusFail:
		return 1
	case StatusError:
		return 2
	default:
		return 2
	}
}
