package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/gengold/pkg/models"
)

// JSONReport is the structured form of a run report for automation
type JSONReport struct {
	FixtureID       string              `json:"fixture_id"`
	OutputDir       string              `json:"output_dir"`
	BaselineDir     string              `json:"baseline_dir"`
	StartTime       string              `json:"start_time"`
	DurationMs      int64               `json:"duration_ms"`
	Status          string              `json:"status"`
	Pass            bool                `json:"pass"`
	FilesCompared   int                 `json:"files_compared"`
	FilesMatched    int                 `json:"files_matched"`
	FilesMismatched int                 `json:"files_mismatched"`
	FilesMissing    int                 `json:"files_missing"`
	FilesUnmatched  int                 `json:"files_unmatched"`
	Statuses        []models.FileStatus `json:"statuses,omitempty"`
	Unmatched       []string            `json:"unmatched,omitempty"`
	Warnings        []models.Diagnostic `json:"warnings,omitempty"`
	GeneratorOutput string              `json:"generator_output,omitempty"`
}

// WriteJSON writes a run report as indented JSON
func WriteJSON(w io.Writer, report *models.RunReport) error {
	out := JSONReport{
		FixtureID:       report.FixtureID,
		OutputDir:       report.OutputDir,
		BaselineDir:     report.BaselineDir,
		StartTime:       report.StartTime.Format(time.RFC3339),
		DurationMs:      report.Duration.Milliseconds(),
		Status:          string(report.Status),
		Pass:            report.Verdict.Pass,
		FilesCompared:   report.Verdict.FilesCompared,
		FilesMatched:    report.Verdict.FilesMatched,
		FilesMismatched: report.Verdict.FilesMismatched,
		FilesMissing:    report.Verdict.FilesMissing,
		FilesUnmatched:  report.Verdict.FilesUnmatched,
		Statuses:        report.Verdict.Statuses,
		Unmatched:       report.Verdict.Unmatched,
		Warnings:        report.Verdict.Warnings,
		GeneratorOutput: report.GeneratorOutput,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
