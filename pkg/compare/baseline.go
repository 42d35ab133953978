package compare

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/storage"
)

// BaselineComparator classifies a generated file against its stored
// baseline. Volatile files are accepted without reading; everything
// else is compared byte-for-byte and, on mismatch, line by line to
// produce actionable diagnostics. All differing lines are reported,
// never just the first.
type BaselineComparator struct {
	volatile *VolatileSet
}

// NewBaselineComparator creates a comparator with the given volatile
// allowlist. A nil allowlist uses the defaults.
func NewBaselineComparator(volatile *VolatileSet) *BaselineComparator {
	if volatile == nil {
		volatile = NewVolatileSet(nil)
	}
	return &BaselineComparator{volatile: volatile}
}

// Compare classifies the pair (generated file, baseline file)
func (c *BaselineComparator) Compare(ctx context.Context, actual, baseline storage.Backend, actualPath, baselinePath string) (*Comparison, error) {
	comparison := &Comparison{
		ActualPath:   actualPath,
		BaselinePath: baselinePath,
	}

	// Volatile files are accepted unconditionally
	if c.volatile.Match(actualPath) {
		comparison.Outcome = models.OutcomeIdentical
		comparison.Reason = "volatile file type, content not compared"
		return comparison, nil
	}

	baselineExists, err := baseline.Exists(ctx, baselinePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check baseline existence: %w", err)
	}
	if !baselineExists {
		comparison.Outcome = models.OutcomeMissingBaseline
		comparison.Reason = "no baseline file exists"
		comparison.Diagnostics = append(comparison.Diagnostics, models.Diagnostic{
			RelativePath: actualPath,
			Message:      fmt.Sprintf("missing baseline file: %s", baselinePath),
		})
		return comparison, nil
	}

	actualContent, err := readAll(ctx, actual, actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated file: %w", err)
	}

	baselineContent, err := readAll(ctx, baseline, baselinePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	if bytes.Equal(actualContent, baselineContent) {
		comparison.Outcome = models.OutcomeIdentical
		comparison.Reason = "content matches baseline"
		return comparison, nil
	}

	comparison.Outcome = models.OutcomeMismatch
	comparison.Reason = "content differs from baseline"
	comparison.Diagnostics = c.diffLines(actualPath, actualContent, baselineContent)

	return comparison, nil
}

// diffLines produces the line-level diagnostics for a mismatched pair.
// When line counts differ the alignment is ambiguous, so only the
// counts are reported and no per-line diff is attempted.
func (c *BaselineComparator) diffLines(path string, actual, baseline []byte) []models.Diagnostic {
	actualLines := strings.Split(string(actual), "\n")
	baselineLines := strings.Split(string(baseline), "\n")

	if len(actualLines) != len(baselineLines) {
		return []models.Diagnostic{{
			RelativePath: path,
			Message: fmt.Sprintf("line count mismatch: generated %d lines, baseline %d lines",
				len(actualLines), len(baselineLines)),
		}}
	}

	var diagnostics []models.Diagnostic
	for i := range actualLines {
		if actualLines[i] != baselineLines[i] {
			diagnostics = append(diagnostics, models.Diagnostic{
				RelativePath: path,
				Message: fmt.Sprintf("line %d differs: got %q, want %q",
					i+1, actualLines[i], baselineLines[i]),
			})
		}
	}

	return diagnostics
}

// Name returns the comparator name
func (c *BaselineComparator) Name() string {
	return "baseline"
}

// readAll reads a file fully through a backend
func readAll(ctx context.Context, backend storage.Backend, path string) ([]byte, error) {
	reader, err := backend.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
