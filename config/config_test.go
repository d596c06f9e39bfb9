package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 180*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.Auth.Enabled)
	assert.Nil(t, cfg.Auth.APIKeys)
	assert.Equal(t, "./data", cfg.Store.DataDir)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GENIE_PORT", "9090")
	t.Setenv("GENIE_API_URL", "https://summarizer.internal")
	t.Setenv("GENIE_API_KEYS", " k1, ,k2 ")
	t.Setenv("GENIE_AUTH_ENABLED", "true")
	t.Setenv("GENIE_CACHE_TTL", "10m")
	t.Setenv("GENIE_RATE_RPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://summarizer.internal", cfg.Upstream.BaseURL)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2.0, cfg.RateLimit.RequestsPerSecond)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GENIE_LOG_LEVEL=debug\nGENIE_PORT=7070\n"), 0o600))

	// Register cleanups, then unset so the .env values apply.
	t.Setenv("GENIE_LOG_LEVEL", "")
	os.Unsetenv("GENIE_LOG_LEVEL")
	t.Setenv("GENIE_PORT", "8181")

	cfg := Load()

	assert.Equal(t, "debug", cfg.Log.Level)
	// Real environment wins over .env.
	assert.Equal(t, 8181, cfg.Server.Port)
}
