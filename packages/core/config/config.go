package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
)

// Config represents the matchspec configuration
type Config struct {
	Reporters   []string `yaml:"reporters,omitempty"`   // Output reporters
	OutputDir   string   `yaml:"outputDir,omitempty"`   // Directory for output files
	HistoryPath string   `yaml:"historyPath,omitempty"` // SQLite run-history database
	NameFilter  string   `yaml:"nameFilter,omitempty"`  // Case name pattern
	Parallel    *bool    `yaml:"parallel,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"` // Number of parallel cases
	Bail        *bool    `yaml:"bail,omitempty"`
	Verbose     *bool    `yaml:"verbose,omitempty"`
	NoColor     *bool    `yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetParallel returns the parallel setting, defaulting to false
func (c *Config) GetParallel() bool {
	return getBool(c.Parallel, false)
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// RunnerConfig converts the configuration into runner settings.
func (c *Config) RunnerConfig() *runner.Config {
	return &runner.Config{
		Verbose:     c.GetVerbose(),
		Bail:        c.GetBail(),
		NameFilter:  c.NameFilter,
		Parallel:    c.GetParallel(),
		Concurrency: c.Concurrency,
	}
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".matchspec.yaml",
	".matchspec.yml",
	"matchspec.yaml",
	"matchspec.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.OutputDir != "" {
		result.OutputDir = other.OutputDir
	}
	if other.HistoryPath != "" {
		result.HistoryPath = other.HistoryPath
	}
	if other.NameFilter != "" {
		result.NameFilter = other.NameFilter
	}
	if other.Concurrency > 0 {
		result.Concurrency = other.Concurrency
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Parallel != nil {
		result.Parallel = other.Parallel
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge reporters
	if len(other.Reporters) > 0 {
		result.Reporters = other.Reporters
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
