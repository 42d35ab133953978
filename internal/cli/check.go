package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdejongh/gengold/pkg/compare"
	"github.com/sdejongh/gengold/pkg/config"
	"github.com/sdejongh/gengold/pkg/harness"
	"github.com/sdejongh/gengold/pkg/logging"
	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/report"
)

// CheckFlags holds check command flags
type CheckFlags struct {
	Generator    string
	Protos       []string
	IncludeDirs  []string
	OutputDir    string
	BaselineDir  string
	MainService  string
	ServiceCfg   string
	PackageName  string
	Template     string
	BundleConfig string
	Timeout      time.Duration
	Exclude      []string
	Output       string
	Report       string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var checkFlags CheckFlags

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the generator and verify its output against baselines",
		Long: `Invoke the code-generation CLI for a fixture, capture its output
directory and verify every generated file against the stored baseline tree.
The output directory is cleared before the generator runs.`,
		RunE: runCheck,
	}

	// Required flags
	cmd.Flags().StringVarP(&checkFlags.Generator, "generator", "g", "", "generator executable (required)")
	cmd.Flags().StringSliceVar(&checkFlags.Protos, "proto", []string{}, "proto file passed to the generator (required, repeatable)")
	cmd.Flags().StringVarP(&checkFlags.OutputDir, "output-dir", "o", "", "generator output directory (required)")
	cmd.Flags().StringVarP(&checkFlags.BaselineDir, "baseline-dir", "b", "", "baseline directory (required)")
	cmd.MarkFlagRequired("generator")
	cmd.MarkFlagRequired("proto")
	cmd.MarkFlagRequired("output-dir")
	cmd.MarkFlagRequired("baseline-dir")

	// Optional flags
	cmd.Flags().StringSliceVarP(&checkFlags.IncludeDirs, "include", "I", []string{}, "proto include directory (repeatable)")
	cmd.Flags().StringVar(&checkFlags.MainService, "main-service", "", "value for the generator --main-service flag")
	cmd.Flags().StringVar(&checkFlags.ServiceCfg, "grpc-service-config", "", "value for the generator --grpc-service-config flag")
	cmd.Flags().StringVar(&checkFlags.PackageName, "package-name", "", "value for the generator --package-name flag")
	cmd.Flags().StringVar(&checkFlags.Template, "template", "", "value for the generator --template flag")
	cmd.Flags().StringVar(&checkFlags.BundleConfig, "bundle-config", "", "value for the generator --bundle-config flag")
	cmd.Flags().DurationVar(&checkFlags.Timeout, "timeout", 0, "generator wall-clock timeout (default from config)")
	cmd.Flags().StringSliceVar(&checkFlags.Exclude, "exclude", []string{}, "glob patterns to exclude from the output tree")
	cmd.Flags().StringVar(&checkFlags.Output, "output", "human", "output format: human, json")
	cmd.Flags().StringVar(&checkFlags.Report, "report", "", "write run report to file")
	cmd.Flags().StringVar(&checkFlags.ReportFormat, "report-format", "human", "report file format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&checkFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&checkFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&checkFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := validateCheckFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	fixture, err := buildFixture(cfg)
	if err != nil {
		return fmt.Errorf("failed to build fixture: %w", err)
	}

	logger, err := createLogger(checkFlags.LogFile, checkFlags.LogFormat, checkFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger = logger.WithFields(logging.Fields{"fixture": fixture.ID})

	h := newHarness(cfg)
	h.SetLogger(logger)

	rep, err := h.Check(ctx, fixture)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	return emitReport(rep)
}

// newHarness builds a harness from resolved configuration
func newHarness(cfg *config.Config) *harness.Harness {
	volatile := compare.NewVolatileSet(cfg.Baseline.VolatileExtensions)
	comparator := compare.NewBaselineComparator(volatile)

	h := harness.New(comparator, cfg.Baseline.MarkerSuffix)
	h.SetExcludePatterns(cfg.Exclude)

	if cfg.Output.Progress && !cfg.Output.Quiet && checkFlags.Output != "json" {
		h.SetProgressWriter(os.Stderr)
	}

	return h
}

// emitReport prints the run report and exits with the verdict code
func emitReport(rep *models.RunReport) error {
	if checkFlags.Report != "" {
		if err := report.WriteReportFile(rep, checkFlags.Report, checkFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}

	if !GetGlobalFlags().Quiet {
		if err := report.WriteReport(os.Stdout, rep, checkFlags.Output); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	os.Exit(rep.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logFile, format, logging.ParseLevel(logLevel))
}
