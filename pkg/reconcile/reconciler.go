package reconcile

import (
	"context"
	"fmt"

	"github.com/sdejongh/gengold/pkg/collect"
	"github.com/sdejongh/gengold/pkg/compare"
	"github.com/sdejongh/gengold/pkg/logging"
	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/storage"
)

// item is one unit of traversal work: an entry in the actual output
// tree paired with its corresponding path in the baseline tree
type item struct {
	actual      storage.FileInfo
	baselineRel string
}

// Result holds everything the reconciler learned from one traversal
// of the actual output tree
type Result struct {
	// Statuses holds one canonical record per generated file visited
	Statuses []models.FileStatus

	// Warnings is the ordered diagnostic stream, in traversal order
	Warnings []models.Diagnostic

	// MissingBaseline is true if any file had no baseline counterpart
	MissingBaseline bool

	// FilesCompared counts the files delegated to the comparator
	FilesCompared int
}

// ProgressFunc is invoked once per file handed to the comparator
type ProgressFunc func(relPath string)

// Reconciler walks the actual output tree and crosses satisfied
// expectations off the registry. Traversal uses an explicit stack of
// (actual, baseline) pairs rather than recursion, so termination and
// ordering are independent of call-stack depth. Content-level
// discrepancies never abort the walk: every mismatch in the tree is
// collected before a verdict is built.
type Reconciler struct {
	comparator   compare.Comparator
	markerSuffix string
	exclude      []string
	logger       logging.Logger
	progress     ProgressFunc
}

// NewReconciler creates a reconciler using the given comparator and
// baseline marker suffix
func NewReconciler(comparator compare.Comparator, markerSuffix string) *Reconciler {
	return &Reconciler{
		comparator:   comparator,
		markerSuffix: markerSuffix,
		logger:       logging.NewNullLogger(),
	}
}

// SetExcludePatterns sets glob patterns for output-tree entries that
// should be skipped entirely
func (r *Reconciler) SetExcludePatterns(patterns []string) {
	r.exclude = patterns
}

// SetLogger sets the logger used during traversal
func (r *Reconciler) SetLogger(logger logging.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// SetProgress sets the per-file progress callback
func (r *Reconciler) SetProgress(fn ProgressFunc) {
	r.progress = fn
}

// Reconcile traverses the actual tree depth-first and resolves every
// file against the registry. Order within a directory is enumeration
// order and carries no semantic weight; only completeness does.
// Filesystem errors during traversal are fatal for the run.
func (r *Reconciler) Reconcile(ctx context.Context, actual, baseline storage.Backend, registry *collect.Registry) (*Result, error) {
	result := &Result{}

	stack, err := r.pushChildren(ctx, actual, ".", nil)
	if err != nil {
		return nil, err
	}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		relPath := it.actual.RelativePath

		if shouldExclude(relPath, r.exclude) {
			r.logger.Debug(ctx, "excluded from comparison", logging.Fields{"path": relPath})
			continue
		}

		if it.actual.IsDir {
			stack, err = r.pushChildren(ctx, actual, relPath, stack)
			if err != nil {
				return nil, err
			}
			continue
		}

		if err := r.reconcileFile(ctx, actual, baseline, it, registry, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// pushChildren enumerates a directory of the actual tree and pushes
// every child onto the stack, paired with its baseline counterpart
func (r *Reconciler) pushChildren(ctx context.Context, actual storage.Backend, dir string, stack []item) ([]item, error) {
	entries, err := actual.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate output directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		baselineRel := entry.RelativePath
		if !entry.IsDir {
			baselineRel += r.markerSuffix
		}
		stack = append(stack, item{actual: entry, baselineRel: baselineRel})
	}

	return stack, nil
}

// reconcileFile delegates one file to the comparator and folds the
// outcome into the registry and the result
func (r *Reconciler) reconcileFile(ctx context.Context, actual, baseline storage.Backend, it item, registry *collect.Registry, result *Result) error {
	relPath := it.actual.RelativePath

	comparison, err := r.comparator.Compare(ctx, actual, baseline, relPath, it.baselineRel)
	if err != nil {
		return fmt.Errorf("failed to compare %q: %w", relPath, err)
	}

	result.FilesCompared++
	if r.progress != nil {
		r.progress(relPath)
	}

	status := models.FileStatus{
		RelativePath: relPath,
		Diagnostics:  comparison.Diagnostics,
	}

	switch comparison.Outcome {
	case models.OutcomeIdentical:
		// Expectation satisfied, cross it off
		registry.Remove(relPath)
		status.Status = models.StatusMatched
		r.logger.Debug(ctx, "file matches baseline", logging.Fields{"path": relPath})

	case models.OutcomeMissingBaseline:
		// The entry never existed in the registry, so there is nothing
		// to leave over; the missing baseline itself fails the run
		registry.Remove(relPath)
		status.Status = models.StatusMissing
		result.MissingBaseline = true
		r.logger.Warn(ctx, "no baseline for generated file", logging.Fields{"path": relPath})

	case models.OutcomeMismatch:
		// The registry entry stays in place: the expectation was never
		// satisfied, so the file also surfaces in the leftover report
		status.Status = models.StatusMismatched
		r.logger.Warn(ctx, "file differs from baseline", logging.Fields{
			"path":  relPath,
			"lines": len(comparison.Diagnostics),
		})
	}

	result.Statuses = append(result.Statuses, status)
	result.Warnings = append(result.Warnings, comparison.Diagnostics...)

	return nil
}
