package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/gengold/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify gengold configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}

			fmt.Printf("Generator: %s\n", cfg.Generator.Executable)
			fmt.Printf("Include Dirs: %s\n", strings.Join(cfg.Generator.IncludeDirs, ", "))
			fmt.Printf("Timeout: %ds\n", cfg.Generator.TimeoutSeconds)
			fmt.Printf("Marker Suffix: %s\n", cfg.Baseline.MarkerSuffix)
			fmt.Printf("Volatile Extensions: %s\n", strings.Join(cfg.Baseline.VolatileExtensions, ", "))
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Progress: %v\n", cfg.Output.Progress)
			fmt.Printf("Logging Enabled: %v\n", cfg.Logging.Enabled)
			if len(cfg.Exclude) > 0 {
				fmt.Printf("Exclude: %s\n", strings.Join(cfg.Exclude, ", "))
			}

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			if err := config.SaveToFile(config.Default(), path); err != nil {
				return err
			}

			fmt.Printf("Configuration written to %s\n", path)
			return nil
		},
	}
}
