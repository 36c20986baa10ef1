// Package config provides configuration management for the recovery tool.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MuddySheep/Shamirs-Leak/internal/fileutil"
	"github.com/MuddySheep/Shamirs-Leak/internal/prng"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Recovery RecoveryConfig `yaml:"recovery"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Warnings accumulates non-fatal issues noticed while applying
	// environment overrides, surfaced by the CLI but never fatal.
	Warnings []string `yaml:"-"`
}

// RecoveryConfig defines the search driver's tunables.
type RecoveryConfig struct {
	Threads            int     `yaml:"threads"`
	PRNGReusePeriod    uint64  `yaml:"prng_reuse_period"`
	PRNGMask           byte    `yaml:"prng_mask"`
	IndexCollisionProb float64 `yaml:"index_collision_prob"`
	Progress           bool    `yaml:"progress"`
	MaxDepth           int     `yaml:"max_depth"`
	RatePerSecond      float64 `yaml:"rate_per_second"`
	AttemptLogPath     string  `yaml:"attempt_log_path"`
	AgeRecipient       string  `yaml:"age_recipient"`
	EncryptAttemptLog  bool    `yaml:"encrypt_attempt_log"`
}

// PRNGSettings adapts the config's flat PRNG fields into prng.Settings.
func (r RecoveryConfig) PRNGSettings() prng.Settings {
	return prng.Settings{ReusePeriod: r.PRNGReusePeriod, Mask: r.PRNGMask}
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file, layering it over Defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is operator-supplied, not attacker input
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file, creating parent directories.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the default config file path under home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default tool home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shamirleak"
	}
	return filepath.Join(home, ".shamirleak")
}

// GetHome returns the configured home directory.
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
