package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the YAML config file.
const FileName = ".tck.yaml"

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	Format        string
	ThemeName     string
	Parallel      int
	Strict        bool
	NoColor       bool
	List          string
	Instantiators []string

	// Flags to track if they were explicitly set by the user
	ParallelSet bool
	StrictSet   bool
	NoColorSet  bool
}

// AppConfig represents the application's configuration from .tck.yaml.
type AppConfig struct {
	Format        string   `yaml:"format"`
	Theme         string   `yaml:"theme"`
	Parallel      int      `yaml:"parallel"`
	Strict        bool     `yaml:"strict"`
	NoColor       bool     `yaml:"no_color"`
	List          string   `yaml:"list"`
	Instantiators []string `yaml:"instantiators"`
}

// Constants for default values.
const (
	DefaultFormat   = "auto"
	DefaultTheme    = "default"
	DefaultList     = "general"
	DefaultParallel = 1
)

// DefaultInstantiators is the strategy set used when none is configured.
// It only names strategies that instantiate every type on DefaultList, so a
// bare run passes on a conforming platform. The serializer and constructor
// strategies are opted into with -i or the config file, together with a list
// they support.
var DefaultInstantiators = []string{"std"}

// Defaults returns the hardcoded configuration.
func Defaults() *AppConfig {
	return &AppConfig{
		Format:        DefaultFormat,
		Theme:         DefaultTheme,
		Parallel:      DefaultParallel,
		List:          DefaultList,
		Instantiators: append([]string(nil), DefaultInstantiators...),
	}
}

// LoadConfig loads .tck.yaml over the defaults. A missing file is not an
// error; an unreadable or malformed one is logged and ignored.
func LoadConfig(logger *zap.Logger) *AppConfig {
	if logger == nil {
		logger = zap.NewNop()
	}
	appCfg := Defaults()

	configPath := getConfigPath()
	if configPath == "" {
		logger.Debug("no config file found, using defaults")
		return appCfg
	}

	fileCfg, err := ReadFile(configPath)
	if err != nil {
		logger.Warn("ignoring config file", zap.String("path", configPath), zap.Error(err))
		return appCfg
	}
	merge(appCfg, fileCfg)
	logger.Debug("loaded config", zap.String("path", configPath))
	return appCfg
}

// ReadFile parses one YAML config file without applying defaults.
func ReadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func merge(dst, src *AppConfig) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.Parallel > 0 {
		dst.Parallel = src.Parallel
	}
	dst.Strict = src.Strict
	dst.NoColor = src.NoColor
	if src.List != "" {
		dst.List = src.List
	}
	if len(src.Instantiators) > 0 {
		dst.Instantiators = append([]string(nil), src.Instantiators...)
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// getConfigPath tries to find the .tck.yaml configuration file.
// It checks local directory first, then XDG UserConfigDir (if valid).
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "tck", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
