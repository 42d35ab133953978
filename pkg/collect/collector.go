package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/sdejongh/gengold/pkg/storage"
)

// Collector enumerates every baseline file beneath a baseline root
// into a Registry. Traversal uses an explicit directory work-list
// rather than recursion so arbitrarily deep fixture trees cannot
// exhaust the call stack.
type Collector struct {
	markerSuffix string
}

// NewCollector creates a collector recognizing baseline files by the
// given marker suffix (e.g. ".baseline")
func NewCollector(markerSuffix string) *Collector {
	return &Collector{markerSuffix: markerSuffix}
}

// Collect walks the baseline backend and returns the complete set of
// expectations. Directories are descended but never recorded; files
// without the marker suffix are incidental and ignored. Any
// filesystem error is fatal for the whole comparison.
func (c *Collector) Collect(ctx context.Context, baseline storage.Backend) (*Registry, error) {
	registry := NewRegistry()

	worklist := []string{"."}
	for len(worklist) > 0 {
		dir := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		entries, err := baseline.List(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to collect baselines under %q: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir {
				worklist = append(worklist, entry.RelativePath)
				continue
			}
			if !strings.HasSuffix(entry.RelativePath, c.markerSuffix) {
				continue
			}
			relPath := strings.TrimSuffix(entry.RelativePath, c.markerSuffix)
			registry.Add(relPath, entry.RelativePath)
		}
	}

	return registry, nil
}
