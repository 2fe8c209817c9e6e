// Package config provides configuration management for Fractis.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Split    SplitConfig    `yaml:"split"`
	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SplitConfig defines default sharing parameters.
type SplitConfig struct {
	Shares    int    `yaml:"shares"`
	Threshold int    `yaml:"threshold"`
	Scheme    string `yaml:"scheme"`
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	MemoryLock bool `yaml:"memory_lock"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	s := c.Split
	if s.Shares < 1 || s.Shares > 255 {
		return fmt.Errorf("split.shares must be between 1 and 255, got %d", s.Shares)
	}
	if s.Threshold < 1 || s.Threshold > s.Shares {
		return fmt.Errorf("split.threshold must be between 1 and split.shares, got %d", s.Threshold)
	}
	if s.Scheme != "shamir" && s.Scheme != "rabin" && s.Scheme != "krawczyk" {
		return fmt.Errorf("split.scheme must be shamir, rabin, or krawczyk, got %q", s.Scheme)
	}
	return nil
}

// GetHome returns the fractis home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default fractis home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fractis"
	}
	return filepath.Join(home, ".fractis")
}
