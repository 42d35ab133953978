package report

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/gengold/pkg/models"
)

// WriteHuman writes a run report in human-readable form
func WriteHuman(w io.Writer, report *models.RunReport) error {
	fmt.Fprintf(w, "Baseline comparison completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Output:   %s\n", report.OutputDir)
	fmt.Fprintf(w, "Baseline: %s\n", report.BaselineDir)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Files compared:    %d\n", report.Verdict.FilesCompared)
	fmt.Fprintf(w, "  Matched:           %d\n", report.Verdict.FilesMatched)
	fmt.Fprintf(w, "  Mismatched:        %d\n", report.Verdict.FilesMismatched)
	fmt.Fprintf(w, "  Missing baseline:  %d\n", report.Verdict.FilesMissing)
	fmt.Fprintf(w, "  Never generated:   %d\n", report.Verdict.FilesUnmatched)
	fmt.Fprintf(w, "\n")

	if len(report.Verdict.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings:\n")
		for _, warning := range report.Verdict.Warnings {
			fmt.Fprintf(w, "  %s: %s\n", warning.RelativePath, warning.Message)
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "Status: %s\n", report.Status)

	if report.GeneratorOutput != "" {
		fmt.Fprintf(w, "\nGenerator output:\n%s\n", report.GeneratorOutput)
	}

	return nil
}
