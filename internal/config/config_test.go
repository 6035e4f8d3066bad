package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "reef", cfg.Service)
	assert.Equal(t, []string{"stats"}, cfg.Sinks)
	assert.Equal(t, 256, cfg.MaxDepth)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REEF_LOG_LEVEL", "debug")
	t.Setenv("REEF_LOG_PRETTY", "true")
	t.Setenv("REEF_SINKS", "log, otlp")
	t.Setenv("REEF_MAX_DEPTH", "64")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, []string{"log", "otlp"}, cfg.Sinks)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "reef", cfg.Service, "untouched fields keep defaults")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("REEF_MAX_DEPTH", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REEF_MAX_DEPTH")
}

func TestFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("REEF_LOG_PRETTY", "maybe")

	cfg := Default()
	err := FromEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REEF_LOG_PRETTY")
}

func TestFromEnv_RequiresStructPointer(t *testing.T) {
	assert.Error(t, FromEnv(42))
	assert.Error(t, FromEnv(Default())) // must be a pointer
}
