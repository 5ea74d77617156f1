package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, BackendFS, cfg.Storage.Backend)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
storage:
  backend: badger
  dir: /tmp/sudoku
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/sudoku", cfg.Storage.Dir)
	// Untouched fields keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.WS.MaxIntervalMs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "listen: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"memory backend needs no dir", func(c *Config) {
			c.Storage.Backend = BackendMemory
			c.Storage.Dir = ""
		}, true},
		{"empty listen", func(c *Config) { c.Listen = "" }, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, false},
		{"fs backend without dir", func(c *Config) { c.Storage.Dir = "" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"zero ws interval", func(c *Config) { c.WS.MaxIntervalMs = 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	cfg.LogLevel = "WARN"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}
