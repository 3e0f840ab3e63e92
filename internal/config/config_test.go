package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20000, cfg.Pipeline.Budget)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	assert.True(t, cfg.Pipeline.MatrixEnabled)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"zero budget", func(c *Config) { c.Pipeline.Budget = 0 }},
		{"negative timeout", func(c *Config) { c.Pipeline.TimeoutMs = -1 }},
		{"zero workers", func(c *Config) { c.Pipeline.Workers = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"zero upload", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"zero batch workers", func(c *Config) { c.Batch.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPipelineBuilderCarriesSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pipeline.Budget = 123
	cfg.Pipeline.TimeoutMs = 1500
	cfg.Pipeline.Workers = 3

	b := cfg.PipelineBuilder()
	got := b.Config()
	assert.Equal(t, 123, got.Budget)
	assert.Equal(t, 1500*time.Millisecond, got.Timeout)
	assert.Equal(t, 3, got.Workers)
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bardec.yaml")

	cfg := DefaultConfig()
	cfg.Pipeline.Budget = 555
	cfg.Server.Port = 9090
	require.NoError(t, cfg.SaveYAML(path))

	viper.Reset()
	t.Cleanup(viper.Reset)

	loaded, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 555, loaded.Pipeline.Budget)
	assert.Equal(t, 9090, loaded.Server.Port)
}

func TestLoadMissingFileFails(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := NewLoader().LoadWithFile("/nonexistent/bardec.yaml")
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, os.Setenv("BARDEC_PIPELINE_WORKERS", "7"))
	t.Cleanup(func() { _ = os.Unsetenv("BARDEC_PIPELINE_WORKERS") })

	// Load from an explicit empty file so a stray bardec.yaml in the
	// working directory cannot interfere.
	dir := t.TempDir()
	path := filepath.Join(dir, "bardec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Pipeline.Workers)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generated.yaml")
	require.NoError(t, GenerateDefaultConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "budget:")
	assert.Contains(t, string(data), "log_level:")
}
