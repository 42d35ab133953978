package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/sdejongh/gengold/pkg/logging"
	"github.com/sdejongh/gengold/pkg/models"
)

// Runner invokes the external code-generation CLI for one fixture.
// The subprocess is awaited to completion before any comparison runs;
// its stdout and stderr are captured only to surface failures.
type Runner struct {
	logger logging.Logger
}

// NewRunner creates a generator runner
func NewRunner() *Runner {
	return &Runner{logger: logging.NewNullLogger()}
}

// SetLogger sets the logger used around subprocess invocation
func (r *Runner) SetLogger(logger logging.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// BuildArgs builds the generator command line for a fixture:
// the output directory, one -I flag per include directory, the proto
// files, then the optional flags
func BuildArgs(fixture *models.Fixture) []string {
	args := []string{fmt.Sprintf("--output_dir=%s", fixture.OutputDir)}

	for _, dir := range fixture.IncludeDirs {
		args = append(args, "-I"+dir)
	}

	args = append(args, fixture.ProtoFiles...)

	if fixture.MainService != "" {
		args = append(args, "--main-service="+fixture.MainService)
	}
	if fixture.GRPCServiceConfig != "" {
		args = append(args, "--grpc-service-config="+fixture.GRPCServiceConfig)
	}
	if fixture.PackageName != "" {
		args = append(args, "--package-name="+fixture.PackageName)
	}
	if fixture.Template != "" {
		args = append(args, "--template="+fixture.Template)
	}
	if fixture.BundleConfig != "" {
		args = append(args, "--bundle-config="+fixture.BundleConfig)
	}

	return args
}

// Run executes the generator and blocks until it exits. The combined
// output is always returned; a non-zero exit, a missing executable or
// a timeout is a hard failure and the comparison must not run.
func (r *Runner) Run(ctx context.Context, fixture *models.Fixture) (string, error) {
	exe, err := exec.LookPath(fixture.Generator)
	if err != nil {
		return "", fmt.Errorf("generator executable not found: %w", err)
	}

	if fixture.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fixture.Timeout)
		defer cancel()
	}

	args := BuildArgs(fixture)
	r.logger.Info(ctx, "invoking generator", logging.Fields{
		"executable": exe,
		"args":       len(args),
		"output_dir": fixture.OutputDir,
	})

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output.String(), fmt.Errorf("generator timed out: %w", ctxErr)
		}
		return output.String(), fmt.Errorf("generator failed: %w", err)
	}

	return output.String(), nil
}

// PrepareOutputDir clears and recreates the fixture output directory
// so each run starts from an empty tree
func PrepareOutputDir(fixture *models.Fixture) error {
	if err := os.RemoveAll(fixture.OutputDir); err != nil {
		return fmt.Errorf("failed to clear output directory: %w", err)
	}
	if err := os.MkdirAll(fixture.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
