package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// matching t.Chdir semantics (unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestInitializeConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 30, cfg.AI.TimeoutSeconds)
	assert.Equal(t, "jsonfile", cfg.Storage.Backend)
	assert.Equal(t, "MYR", cfg.Currency.Default)
	assert.Equal(t, 20, cfg.Scan.MaxFileSizeMB)
}

func TestInitializeConfig_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONI_LOG_LEVEL", "debug")
	t.Setenv("MONI_STORAGE_BACKEND", "sqlite")
	t.Setenv("MONI_AI_TIMEOUT_SECONDS", "60")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestInitializeConfig_InvalidValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("MONI_LOG_LEVEL", "verbose")
		_, err := InitializeConfig()
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("MONI_AI_TIMEOUT_SECONDS", "0")
		_, err := InitializeConfig()
		assert.Error(t, err)
	})

	t.Run("bad file size", func(t *testing.T) {
		t.Setenv("MONI_SCAN_MAX_FILE_SIZE_MB", "500")
		_, err := InitializeConfig()
		assert.Error(t, err)
	})
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, "debug", logger.GetLevel().String())
}
