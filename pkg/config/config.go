package config

import (
	"github.com/sdejongh/gengold/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Baseline  BaselineConfig  `yaml:"baseline"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Exclude   []string        `yaml:"exclude"`
}

// GeneratorConfig holds generator invocation defaults
type GeneratorConfig struct {
	Executable     string   `yaml:"executable"`
	IncludeDirs    []string `yaml:"include_dirs"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// BaselineConfig holds baseline tree settings
type BaselineConfig struct {
	MarkerSuffix       string   `yaml:"marker_suffix"`
	VolatileExtensions []string `yaml:"volatile_extensions"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			TimeoutSeconds: 120,
		},
		Baseline: BaselineConfig{
			MarkerSuffix:       ".baseline",
			VolatileExtensions: []string{".proto"},
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Baseline.MarkerSuffix == "" {
		return &models.ValidationError{
			Field:   "baseline.marker_suffix",
			Message: "marker suffix cannot be empty",
		}
	}

	if c.Generator.TimeoutSeconds < 0 {
		return &models.ValidationError{
			Field:   "generator.timeout_seconds",
			Message: "timeout cannot be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
