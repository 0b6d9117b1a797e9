package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.Run.Iterations)
	assert.Equal(t, 0, cfg.Run.Warmup)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.Metrics.Addr)

	require.NoError(t, cfg.Validate())
}

func TestValidateLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg.LogLevel = level
		require.NoError(t, cfg.Validate())
	}

	cfg.LogLevel = "trace"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidateOutputFormat(t *testing.T) {
	cfg := DefaultConfig()
	for _, format := range []string{"", "text", "yaml"} {
		cfg.Output.Format = format
		require.NoError(t, cfg.Validate())
	}

	cfg.Output.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestValidateRunSettings(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Run.Iterations = 0
	require.Error(t, cfg.Validate())

	cfg.Run.Iterations = 10
	cfg.Run.Warmup = -1
	require.Error(t, cfg.Validate())

	cfg.Run.Warmup = 5
	require.NoError(t, cfg.Validate())
}
