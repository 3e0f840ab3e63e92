package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "bardec"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "BARDEC"
)

// Loader handles loading configuration from files, environment variables,
// and defaults, in that precedence order below explicit flag bindings.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader on the global viper instance so cobra flag
// bindings made in the root command are visible.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load loads and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	return l.load("", true)
}

// LoadWithFile loads and validates the configuration from a specific file.
// An empty path falls back to the standard search paths.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	return l.load(configFile, true)
}

// LoadWithoutValidation loads the configuration without validating it, for
// commands that inspect or repair a broken config.
func (l *Loader) LoadWithoutValidation() (*Config, error) {
	return l.load("", false)
}

func (l *Loader) load(configFile string, validate bool) (*Config, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configFile)
		}
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		l.addConfigPaths()
	}

	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if validate {
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return &config, nil
}

// Set sets a value in the configuration.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for flag binding.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// GetResolvedConfig returns the fully resolved settings for debugging.
func (l *Loader) GetResolvedConfig() map[string]interface{} {
	return l.v.AllSettings()
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/bardec")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "bardec"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "bardec"))
	}
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("pipeline.budget", defaults.Pipeline.Budget)
	l.v.SetDefault("pipeline.timeout_ms", defaults.Pipeline.TimeoutMs)
	l.v.SetDefault("pipeline.workers", defaults.Pipeline.Workers)
	l.v.SetDefault("pipeline.trace_limit", defaults.Pipeline.TraceLimit)
	l.v.SetDefault("pipeline.matrix_enabled", defaults.Pipeline.MatrixEnabled)

	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.trace_enabled", defaults.Output.TraceEnabled)

	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.cors_origin", defaults.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	l.v.SetDefault("server.rate_limit_per_min", defaults.Server.RateLimitPerMin)

	l.v.SetDefault("batch.workers", defaults.Batch.Workers)
	l.v.SetDefault("batch.continue_on_error", defaults.Batch.ContinueOnError)
}

// GenerateDefaultConfigFile writes a default configuration file. An empty
// filename writes bardec.yaml in the working directory.
func GenerateDefaultConfigFile(filename string) error {
	if filename == "" {
		filename = "bardec.yaml"
	}
	cfg := DefaultConfig()
	return cfg.SaveYAML(filename)
}

// GetConfigSearchPaths returns the paths searched for configuration files.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home, filepath.Join(home, ".config", "bardec"))
	}
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "bardec"))
	}
	paths = append(paths, "/etc/bardec")

	return paths
}
