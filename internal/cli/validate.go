package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/gengold/internal/platform"
	"github.com/sdejongh/gengold/pkg/config"
	"github.com/sdejongh/gengold/pkg/models"
)

// validateCheckFlags validates the check command flags
func validateCheckFlags() error {
	if err := platform.ValidatePath(checkFlags.OutputDir); err != nil {
		return err
	}
	if err := platform.ValidatePath(checkFlags.BaselineDir); err != nil {
		return err
	}

	// Baseline tree must exist up front; the output dir is created
	baselineInfo, err := os.Stat(checkFlags.BaselineDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("baseline directory does not exist: %s", checkFlags.BaselineDir)
	} else if err != nil {
		return fmt.Errorf("failed to access baseline directory: %w", err)
	} else if !baselineInfo.IsDir() {
		return fmt.Errorf("baseline path is not a directory: %s", checkFlags.BaselineDir)
	}

	// Proto files must exist
	for _, proto := range checkFlags.Protos {
		if _, err := os.Stat(proto); os.IsNotExist(err) {
			return fmt.Errorf("proto file does not exist: %s", proto)
		}
	}

	// Include dirs must exist
	for _, dir := range checkFlags.IncludeDirs {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("include directory does not exist: %s", dir)
		} else if err == nil && !info.IsDir() {
			return fmt.Errorf("include path is not a directory: %s", dir)
		}
	}

	return validateDistinctRoots()
}

// validateVerifyFlags validates the verify command flags
func validateVerifyFlags() error {
	outputInfo, err := os.Stat(checkFlags.OutputDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", checkFlags.OutputDir)
	} else if err != nil {
		return fmt.Errorf("failed to access output directory: %w", err)
	} else if !outputInfo.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", checkFlags.OutputDir)
	}

	baselineInfo, err := os.Stat(checkFlags.BaselineDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("baseline directory does not exist: %s", checkFlags.BaselineDir)
	} else if err != nil {
		return fmt.Errorf("failed to access baseline directory: %w", err)
	} else if !baselineInfo.IsDir() {
		return fmt.Errorf("baseline path is not a directory: %s", checkFlags.BaselineDir)
	}

	return validateDistinctRoots()
}

// validateDistinctRoots rejects identical or nested output/baseline trees
func validateDistinctRoots() error {
	outputAbs, err := filepath.Abs(checkFlags.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	baselineAbs, err := filepath.Abs(checkFlags.BaselineDir)
	if err != nil {
		return fmt.Errorf("failed to resolve baseline path: %w", err)
	}

	if outputAbs == baselineAbs {
		return fmt.Errorf("output and baseline cannot be the same: %s", outputAbs)
	}

	if strings.HasPrefix(baselineAbs, outputAbs+string(filepath.Separator)) {
		return fmt.Errorf("baseline cannot be inside the output directory")
	}
	if strings.HasPrefix(outputAbs, baselineAbs+string(filepath.Separator)) {
		return fmt.Errorf("output cannot be inside the baseline directory")
	}

	return nil
}

// loadConfig loads the configuration file, falling back to defaults
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}
	if checkFlags.Output != "" {
		cfg.Output.Format = checkFlags.Output
	}
	if len(checkFlags.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, checkFlags.Exclude...)
	}
	if checkFlags.Generator != "" {
		cfg.Generator.Executable = checkFlags.Generator
	}
	if len(checkFlags.IncludeDirs) > 0 {
		cfg.Generator.IncludeDirs = append(cfg.Generator.IncludeDirs, checkFlags.IncludeDirs...)
	}
}

// buildFixture creates the fixture driving one check run
func buildFixture(cfg *config.Config) (*models.Fixture, error) {
	timeout := checkFlags.Timeout
	if timeout == 0 {
		timeout = time.Duration(cfg.Generator.TimeoutSeconds) * time.Second
	}

	fixture := &models.Fixture{
		ID:                uuid.New().String(),
		Generator:         cfg.Generator.Executable,
		ProtoFiles:        checkFlags.Protos,
		IncludeDirs:       cfg.Generator.IncludeDirs,
		OutputDir:         platform.NormalizePath(checkFlags.OutputDir),
		BaselineDir:       platform.NormalizePath(checkFlags.BaselineDir),
		MainService:       checkFlags.MainService,
		GRPCServiceConfig: checkFlags.ServiceCfg,
		PackageName:       checkFlags.PackageName,
		Template:          checkFlags.Template,
		BundleConfig:      checkFlags.BundleConfig,
		Timeout:           timeout,
		ExcludePatterns:   cfg.Exclude,
		CreatedAt:         time.Now(),
	}

	if err := fixture.Validate(); err != nil {
		return nil, err
	}

	return fixture, nil
}

// buildVerifyFixture creates a comparison-only fixture
func buildVerifyFixture(cfg *config.Config) (*models.Fixture, error) {
	return &models.Fixture{
		ID:              uuid.New().String(),
		OutputDir:       platform.NormalizePath(checkFlags.OutputDir),
		BaselineDir:     platform.NormalizePath(checkFlags.BaselineDir),
		ExcludePatterns: cfg.Exclude,
		CreatedAt:       time.Now(),
	}, nil
}
