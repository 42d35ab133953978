package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an existing output directory against baselines",
		Long: `Compare an already-populated generator output directory against the
stored baseline tree without invoking the generator. This is equivalent to
the comparison half of the check command.`,
		RunE: runVerify,
	}

	// Reuse check flags for the comparison half
	cmd.Flags().StringVarP(&checkFlags.OutputDir, "output-dir", "o", "", "generator output directory (required)")
	cmd.Flags().StringVarP(&checkFlags.BaselineDir, "baseline-dir", "b", "", "baseline directory (required)")
	cmd.MarkFlagRequired("output-dir")
	cmd.MarkFlagRequired("baseline-dir")

	cmd.Flags().StringSliceVar(&checkFlags.Exclude, "exclude", []string{}, "glob patterns to exclude from the output tree")
	cmd.Flags().StringVar(&checkFlags.Output, "output", "human", "output format: human, json")
	cmd.Flags().StringVar(&checkFlags.Report, "report", "", "write run report to file")
	cmd.Flags().StringVar(&checkFlags.ReportFormat, "report-format", "human", "report file format: human, json")

	cmd.Flags().StringVar(&checkFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&checkFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&checkFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := validateVerifyFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	fixture, err := buildVerifyFixture(cfg)
	if err != nil {
		return fmt.Errorf("failed to build fixture: %w", err)
	}

	logger, err := createLogger(checkFlags.LogFile, checkFlags.LogFormat, checkFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	h := newHarness(cfg)
	h.SetLogger(logger)

	rep, err := h.Verify(ctx, fixture)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	return emitReport(rep)
}
