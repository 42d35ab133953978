// Package harness ties the generator runner, baseline collector,
// tree reconciler and reporter into one comparison run. Each run owns
// its registry and traversal stack exclusively; nothing is shared
// across runs and a run is atomic from the caller's perspective.
package harness

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/gengold/pkg/collect"
	"github.com/sdejongh/gengold/pkg/compare"
	"github.com/sdejongh/gengold/pkg/generator"
	"github.com/sdejongh/gengold/pkg/logging"
	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/reconcile"
	"github.com/sdejongh/gengold/pkg/report"
	"github.com/sdejongh/gengold/pkg/storage"
)

// Harness runs baseline comparisons for generator fixtures
type Harness struct {
	runner       *generator.Runner
	collector    *collect.Collector
	reconciler   *reconcile.Reconciler
	reporter     *report.Reporter
	logger       logging.Logger
	progressOut  io.Writer
	markerSuffix string
}

// New creates a harness using the given comparator and baseline
// marker suffix
func New(comparator compare.Comparator, markerSuffix string) *Harness {
	return &Harness{
		runner:       generator.NewRunner(),
		collector:    collect.NewCollector(markerSuffix),
		reconciler:   reconcile.NewReconciler(comparator, markerSuffix),
		reporter:     report.NewReporter(),
		logger:       logging.NewNullLogger(),
		markerSuffix: markerSuffix,
	}
}

// SetLogger sets the logger used across the run
func (h *Harness) SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	h.logger = logger
	h.runner.SetLogger(logger)
	h.reconciler.SetLogger(logger)
}

// SetExcludePatterns sets glob patterns skipped in the output tree
func (h *Harness) SetExcludePatterns(patterns []string) {
	h.reconciler.SetExcludePatterns(patterns)
}

// SetProgressWriter enables a progress bar on the given writer while
// files are compared
func (h *Harness) SetProgressWriter(w io.Writer) {
	h.progressOut = w
}

// Check runs the full harness for one fixture: clear the output
// directory, invoke the generator, then verify the output tree
// against the baseline tree. The returned report is always non-nil;
// a non-nil error means the run aborted before a verdict was reached
// and the report carries status error.
func (h *Harness) Check(ctx context.Context, fixture *models.Fixture) (*models.RunReport, error) {
	rep := newReport(fixture)

	if err := fixture.Validate(); err != nil {
		return finishError(rep, ""), fmt.Errorf("invalid fixture: %w", err)
	}

	if err := generator.PrepareOutputDir(fixture); err != nil {
		return finishError(rep, ""), err
	}

	output, err := h.runner.Run(ctx, fixture)
	if err != nil {
		h.logger.Error(ctx, "generator invocation failed", err, logging.Fields{"fixture": fixture.ID})
		return finishError(rep, output), err
	}

	return h.verify(ctx, fixture, rep)
}

// Verify compares an existing output tree against the baseline tree
// without invoking the generator
func (h *Harness) Verify(ctx context.Context, fixture *models.Fixture) (*models.RunReport, error) {
	rep := newReport(fixture)

	if fixture.OutputDir == "" || fixture.BaselineDir == "" {
		return finishError(rep, ""), &models.ValidationError{
			Field:   "OutputDir",
			Message: "output and baseline directories are required",
		}
	}

	return h.verify(ctx, fixture, rep)
}

func (h *Harness) verify(ctx context.Context, fixture *models.Fixture, rep *models.RunReport) (*models.RunReport, error) {
	actual, err := storage.NewLocal(fixture.OutputDir)
	if err != nil {
		return finishError(rep, ""), fmt.Errorf("failed to open output directory: %w", err)
	}
	defer actual.Close()

	baseline, err := storage.NewLocal(fixture.BaselineDir)
	if err != nil {
		return finishError(rep, ""), fmt.Errorf("failed to open baseline directory: %w", err)
	}
	defer baseline.Close()

	registry, err := h.collector.Collect(ctx, baseline)
	if err != nil {
		return finishError(rep, ""), err
	}
	h.logger.Info(ctx, "collected baseline expectations", logging.Fields{
		"fixture": fixture.ID,
		"count":   registry.Len(),
	})

	h.reconciler.SetExcludePatterns(fixture.ExcludePatterns)

	var progress *report.Progress
	if h.progressOut != nil {
		progress = report.NewProgress(registry.Len(), h.progressOut)
		h.reconciler.SetProgress(progress.Step)
	}

	result, err := h.reconciler.Reconcile(ctx, actual, baseline, registry)
	if progress != nil {
		progress.Finish()
		h.reconciler.SetProgress(nil)
	}
	if err != nil {
		return finishError(rep, ""), err
	}

	rep.Verdict = h.reporter.Build(registry, result)
	rep.EndTime = time.Now()
	rep.Duration = rep.EndTime.Sub(rep.StartTime)
	if rep.Verdict.Pass {
		rep.Status = models.StatusPass
	} else {
		rep.Status = models.StatusFail
	}

	h.logger.Info(ctx, "comparison finished", logging.Fields{
		"fixture": fixture.ID,
		"status":  string(rep.Status),
	})

	return rep, nil
}

func newReport(fixture *models.Fixture) *models.RunReport {
	return &models.RunReport{
		FixtureID:   fixture.ID,
		OutputDir:   fixture.OutputDir,
		BaselineDir: fixture.BaselineDir,
		StartTime:   time.Now(),
	}
}

func finishError(rep *models.RunReport, generatorOutput string) *models.RunReport {
	rep.EndTime = time.Now()
	rep.Duration = rep.EndTime.Sub(rep.StartTime)
	rep.Status = models.StatusError
	rep.GeneratorOutput = generatorOutput
	return rep
}
