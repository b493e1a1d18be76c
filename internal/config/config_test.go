package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs121287/zen/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig(), cfg.Garden)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Empty(t, cfg.Storage.Path)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
garden:
  width: 80
  height: 30
  seed: 1234
  flowAttempts: 1000
server:
  port: 9000
  rateLimit: 5
  rateWindow: 30s
  corsOrigins: ["https://zen.example.com"]
storage:
  path: /tmp/zen.db
logLevel: debug
parallelism: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Garden.Width)
	assert.Equal(t, 30, cfg.Garden.Height)
	assert.Equal(t, int64(1234), cfg.Garden.Seed)
	assert.Equal(t, 1000, cfg.Garden.FlowAttempts)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, []string{"https://zen.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 400, cfg.Server.MaxWidth, "unset keys keep defaults")
	assert.Equal(t, "/tmp/zen.db", cfg.Storage.Path)
	assert.Equal(t, 4, cfg.Parallelism)

	lvl, err := ParseLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "garden:\n  width: 80\n  height: 30\n")
	t.Setenv("ZEN_WIDTH", "64")
	t.Setenv("ZEN_SEED", "9000000000")
	t.Setenv("ZEN_DB", "catalog.db")
	t.Setenv("ZEN_HEIGHT", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Garden.Width)
	assert.Equal(t, 30, cfg.Garden.Height, "unparsable values are ignored")
	assert.Equal(t, int64(9000000000), cfg.Garden.Seed)
	assert.Equal(t, "catalog.db", cfg.Storage.Path)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "garden: [not, a, map"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "garden:\n  width: 5\n  height: 30\n"))
	assert.ErrorIs(t, err, engine.ErrInvalidDimensions)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"rate limit", func(c *Config) { c.Server.RateLimit = 0 }},
		{"rate window", func(c *Config) { c.Server.RateWindow = 0 }},
		{"max garden", func(c *Config) { c.Server.MaxWidth = 10 }},
		{"parallelism", func(c *Config) { c.Parallelism = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
