package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLiteConfig(t *testing.T) {
	cfg := DefaultLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadLiteConfig_Defaults(t *testing.T) {
	// Clear relevant env vars
	clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, "stdio", cfg.Transport)
}

func TestLoadLiteConfig_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	os.Setenv("BIOMCP_DATA_DIR", "/tmp/test-biomcp")
	os.Setenv("BIOMCP_CACHE_MAX_ITEMS", "500")
	os.Setenv("BIOMCP_CACHE_TTL", "12h")
	os.Setenv("BIOMCP_TRANSPORT", "http")
	os.Setenv("BIOMCP_HTTP_PORT", "9090")
	os.Setenv("BIOMCP_LOG_LEVEL", "debug")

	defer clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.Equal(t, "/tmp/test-biomcp", cfg.DataDir)
	assert.Equal(t, 500, cfg.CacheMaxItems)
	assert.Equal(t, 12*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLiteConfig_BenchmarkDir(t *testing.T) {
	cfg := &LiteConfig{DataDir: "/home/user/.biomcp"}

	path := cfg.BenchmarkDir()

	assert.Equal(t, "/home/user/.biomcp/benchmarks", path)
}

func TestLiteConfig_ExportDir(t *testing.T) {
	cfg := &LiteConfig{DataDir: "/home/user/.biomcp"}

	path := cfg.ExportDir()

	assert.Equal(t, "/home/user/.biomcp/exports", path)
}

func TestLiteConfig_EnsureDataDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	cfg := &LiteConfig{DataDir: filepath.Join(tmpDir, "biomcp")}

	err = cfg.EnsureDataDir()
	require.NoError(t, err)

	// Verify directories exist
	_, err = os.Stat(cfg.DataDir)
	assert.NoError(t, err)

	_, err = os.Stat(cfg.ExportDir())
	assert.NoError(t, err)
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"BIOMCP_DATA_DIR",
		"BIOMCP_CACHE_MAX_ITEMS",
		"BIOMCP_CACHE_TTL",
		"BIOMCP_TRANSPORT",
		"BIOMCP_HTTP_PORT",
		"BIOMCP_LOG_LEVEL",
		"BIOMCP_LOG_FORMAT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
