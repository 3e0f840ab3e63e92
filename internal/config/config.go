// Package config defines the bardec application configuration and its
// loading from files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strichware/bardec/internal/pipeline"
)

// Config is the complete configuration for the bardec application. It covers
// all commands (decode, serve) and loads from configuration files,
// environment variables, and command-line flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server" json:"server"`
	Batch    BatchConfig    `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// PipelineConfig contains decode pipeline settings.
type PipelineConfig struct {
	// Budget caps decoder evaluations per request.
	Budget int `mapstructure:"budget" yaml:"budget" json:"budget"`
	// TimeoutMs bounds wall-clock time per request in milliseconds.
	TimeoutMs int `mapstructure:"timeout_ms" yaml:"timeout_ms" json:"timeout_ms"`
	// Workers sets parallel transform workers; 1 is sequential.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
	// TraceLimit bounds the diagnostic trace length.
	TraceLimit int `mapstructure:"trace_limit" yaml:"trace_limit" json:"trace_limit"`
	// MatrixEnabled toggles the QR priority path.
	MatrixEnabled bool `mapstructure:"matrix_enabled" yaml:"matrix_enabled" json:"matrix_enabled"`
}

// OutputConfig contains CLI output settings.
type OutputConfig struct {
	Format       string `mapstructure:"format" yaml:"format" json:"format"`
	TraceEnabled bool   `mapstructure:"trace_enabled" yaml:"trace_enabled" json:"trace_enabled"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimitPerMin int    `mapstructure:"rate_limit_per_min" yaml:"rate_limit_per_min" json:"rate_limit_per_min"`
}

// BatchConfig contains batch decoding settings for the decode command.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	p := pipeline.DefaultConfig()
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Pipeline: PipelineConfig{
			Budget:        p.Budget,
			TimeoutMs:     int(p.Timeout / time.Millisecond),
			Workers:       p.Workers,
			TraceLimit:    p.TraceLimit,
			MatrixEnabled: p.EnableMatrix,
		},
		Output: OutputConfig{
			Format:       "text",
			TraceEnabled: false,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     20,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			RateLimitPerMin: 120,
		},
		Batch: BatchConfig{
			Workers:         4,
			ContinueOnError: true,
		},
	}
}

// Validate validates the configuration and returns the first error found.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Pipeline.Budget <= 0 {
		return fmt.Errorf("invalid pipeline budget: %d (must be positive)", c.Pipeline.Budget)
	}
	if c.Pipeline.TimeoutMs < 0 {
		return fmt.Errorf("invalid pipeline timeout: %d (must be >= 0)", c.Pipeline.TimeoutMs)
	}
	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("invalid pipeline workers: %d (must be positive)", c.Pipeline.Workers)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.RateLimitPerMin < 0 {
		return fmt.Errorf("invalid rate limit: %d (must be >= 0)", c.Server.RateLimitPerMin)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

// PipelineBuilder returns a pipeline builder preconfigured from this config.
func (c *Config) PipelineBuilder() *pipeline.Builder {
	return pipeline.NewBuilder().
		WithBudget(c.Pipeline.Budget).
		WithTimeout(time.Duration(c.Pipeline.TimeoutMs) * time.Millisecond).
		WithWorkers(c.Pipeline.Workers).
		WithTraceLimit(c.Pipeline.TraceLimit).
		WithMatrix(c.Pipeline.MatrixEnabled)
}

// SaveYAML writes the configuration as YAML to the given path.
func (c *Config) SaveYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
