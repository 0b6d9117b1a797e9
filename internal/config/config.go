// Package config defines the bench CLI configuration and its loading from
// files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for the bench CLI. It is
// populated from configuration files, environment variables, and
// command-line flags, in increasing order of precedence.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Measurement loop settings
	Run RunConfig `mapstructure:"run" yaml:"run" json:"run"`

	// Result output settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Prometheus metrics settings
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// RunConfig contains measurement loop settings.
type RunConfig struct {
	Iterations int      `mapstructure:"iterations" yaml:"iterations" json:"iterations"`
	Warmup     int      `mapstructure:"warmup" yaml:"warmup" json:"warmup"`
	Workloads  []string `mapstructure:"workloads" yaml:"workloads" json:"workloads"`
}

// OutputConfig contains result output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// MetricsConfig contains Prometheus exposition settings. When Addr is
// non-empty, the run command serves /metrics there for the duration of the
// run.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr" json:"addr"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Run: RunConfig{
			Iterations: 1000,
			Warmup:     0,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Run.Iterations <= 0 {
		return fmt.Errorf("run.iterations must be positive, got %d", c.Run.Iterations)
	}
	if c.Run.Warmup < 0 {
		return fmt.Errorf("run.warmup must not be negative, got %d", c.Run.Warmup)
	}

	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
