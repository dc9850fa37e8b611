package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/dkoosis/tck/pkg/render"
)

// Priority defines the explicit priority order for configuration resolution.
// Higher priority sources override lower priority sources.
const (
	// PriorityCLI is the highest priority - explicit user intent via command line
	PriorityCLI = 1

	// PriorityEnv is second - environment variables for automation/CI
	PriorityEnv = 2

	// PriorityFile is third - project-specific configuration
	PriorityFile = 3

	// PriorityDefault is lowest - sensible defaults
	PriorityDefault = 4
)

// Source names reported in ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// Formats lists the accepted output formats.
var Formats = []string{"auto", "terminal", "llm", "json"}

// ResolvedConfig holds the final resolved configuration after applying all priority rules.
type ResolvedConfig struct {
	Format        string
	Theme         string
	Parallel      int
	Strict        bool
	NoColor       bool
	List          string
	Instantiators []string

	// Resolution metadata (for debugging)
	FormatSource   string
	ThemeSource    string
	ParallelSource string
	StrictSource   string
	NoColorSource  string
}

// ResolveConfig resolves configuration from all sources with explicit
// priority order: CLI > env > file > defaults.
func ResolveConfig(cliFlags CliFlags, logger *zap.Logger) (*ResolvedConfig, error) {
	return resolve(cliFlags, LoadConfig(logger))
}

func resolve(cliFlags CliFlags, appCfg *AppConfig) (*ResolvedConfig, error) {
	def := Defaults()
	resolved := &ResolvedConfig{
		Format:         appCfg.Format,
		Theme:          appCfg.Theme,
		Parallel:       appCfg.Parallel,
		Strict:         appCfg.Strict,
		NoColor:        appCfg.NoColor,
		List:           appCfg.List,
		Instantiators:  appCfg.Instantiators,
		FormatSource:   fileOrDefault(appCfg.Format != def.Format),
		ThemeSource:    fileOrDefault(appCfg.Theme != def.Theme),
		ParallelSource: fileOrDefault(appCfg.Parallel != def.Parallel),
		StrictSource:   fileOrDefault(appCfg.Strict),
		NoColorSource:  fileOrDefault(appCfg.NoColor),
	}

	switch {
	case cliFlags.Format != "":
		resolved.Format, resolved.FormatSource = cliFlags.Format, SourceCLI
	case os.Getenv("TCK_FORMAT") != "":
		resolved.Format, resolved.FormatSource = os.Getenv("TCK_FORMAT"), SourceEnv
	}

	switch {
	case cliFlags.ThemeName != "":
		resolved.Theme, resolved.ThemeSource = cliFlags.ThemeName, SourceCLI
	case os.Getenv("TCK_THEME") != "":
		resolved.Theme, resolved.ThemeSource = os.Getenv("TCK_THEME"), SourceEnv
	}

	if cliFlags.ParallelSet {
		resolved.Parallel, resolved.ParallelSource = cliFlags.Parallel, SourceCLI
	} else if v := os.Getenv("TCK_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TCK_PARALLEL: %w", err)
		}
		resolved.Parallel, resolved.ParallelSource = n, SourceEnv
	}

	if cliFlags.StrictSet {
		resolved.Strict, resolved.StrictSource = cliFlags.Strict, SourceCLI
	} else if b := getEnvBool("TCK_STRICT"); b != nil {
		resolved.Strict, resolved.StrictSource = *b, SourceEnv
	}

	if cliFlags.NoColorSet {
		resolved.NoColor, resolved.NoColorSource = cliFlags.NoColor, SourceCLI
	} else if b := getEnvBool("TCK_NO_COLOR", "NO_COLOR"); b != nil {
		resolved.NoColor, resolved.NoColorSource = *b, SourceEnv
	}

	if cliFlags.List != "" {
		resolved.List = cliFlags.List
	}
	if len(cliFlags.Instantiators) > 0 {
		resolved.Instantiators = cliFlags.Instantiators
	}
	resolved.Instantiators = append([]string(nil), resolved.Instantiators...)

	if resolved.NoColor {
		resolved.Theme = "mono"
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

func fileOrDefault(fromFile bool) string {
	if fromFile {
		return SourceFile
	}
	return SourceDefault
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if !slices.Contains(Formats, cfg.Format) {
		return fmt.Errorf("invalid format: %s (must be one of %v)", cfg.Format, Formats)
	}
	if !slices.Contains(render.ThemeNames(), cfg.Theme) {
		return fmt.Errorf("invalid theme: %s (must be one of %v)", cfg.Theme, render.ThemeNames())
	}
	if cfg.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative, got: %d", cfg.Parallel)
	}
	if len(cfg.Instantiators) == 0 {
		return fmt.Errorf("no instantiators configured")
	}
	return nil
}
