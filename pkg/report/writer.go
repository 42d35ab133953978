package report

import (
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/gengold/pkg/models"
)

// WriteReport writes the run report to the writer in the requested
// format ("human" or "json")
func WriteReport(w io.Writer, report *models.RunReport, format string) error {
	switch format {
	case "json":
		return WriteJSON(w, report)
	default:
		return WriteHuman(w, report)
	}
}

// WriteReportFile writes the run report to a file, creating it if
// necessary
func WriteReportFile(report *models.RunReport, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	return WriteReport(file, report, format)
}
