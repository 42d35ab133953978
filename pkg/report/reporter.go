package report

import (
	"fmt"

	"github.com/sdejongh/gengold/pkg/collect"
	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/reconcile"
)

// Reporter folds the post-traversal registry and the reconciliation
// result into the final verdict. The run fails if any file had no
// baseline, if any baseline was never satisfied, or if any content
// mismatch occurred; it passes only with zero discrepancies.
type Reporter struct{}

// NewReporter creates a reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// Build produces the verdict for one comparison run
func (r *Reporter) Build(registry *collect.Registry, result *reconcile.Result) models.Verdict {
	verdict := models.Verdict{
		Statuses:      result.Statuses,
		Warnings:      result.Warnings,
		FilesCompared: result.FilesCompared,
	}

	for _, status := range result.Statuses {
		switch status.Status {
		case models.StatusMatched:
			verdict.FilesMatched++
		case models.StatusMismatched:
			verdict.FilesMismatched++
		case models.StatusMissing:
			verdict.FilesMissing++
		}
	}

	// Whatever survives in the registry was never matched by a
	// generated file. Mismatched files also remain here; the direct
	// warning and the leftover flag describe the same per-path status.
	verdict.Unmatched = registry.Paths()
	verdict.FilesUnmatched = len(verdict.Unmatched)
	for _, path := range verdict.Unmatched {
		verdict.Warnings = append(verdict.Warnings, models.Diagnostic{
			RelativePath: path,
			Message:      fmt.Sprintf("baseline %s is not identical with the generated file", registry.BaselinePath(path)),
		})
	}

	verdict.Pass = !result.MissingBaseline &&
		verdict.FilesUnmatched == 0 &&
		verdict.FilesMismatched == 0

	return verdict
}
