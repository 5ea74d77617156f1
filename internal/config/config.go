// Package config loads the server configuration from a YAML file,
// starting from defaults so a partial file only overrides what it
// names.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFS     = "fs"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type Config struct {
	Listen   string        `yaml:"listen"`    // e.g. ":8080"
	LogLevel string        `yaml:"log_level"` // debug, info, warn or error
	Storage  StorageConfig `yaml:"storage"`
	Metrics  MetricsConfig `yaml:"metrics"`
	WS       WSConfig      `yaml:"ws"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"` // fs, badger or memory
	Dir     string `yaml:"dir"`     // data directory for fs and badger
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type WSConfig struct {
	// MaxIntervalMs caps the per-step replay delay a watch client may
	// request. Larger requests are clamped, not rejected.
	MaxIntervalMs int `yaml:"max_interval_ms"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: BackendFS,
			Dir:     "./data",
		},
		Metrics: MetricsConfig{Enabled: true},
		WS:      WSConfig{MaxIntervalMs: 1000},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen must not be empty")
	}
	switch c.Storage.Backend {
	case BackendFS, BackendBadger:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the %s backend", c.Storage.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend %q (want fs, badger or memory)", c.Storage.Backend)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.WS.MaxIntervalMs <= 0 {
		return fmt.Errorf("ws.max_interval_ms must be positive")
	}
	return nil
}

// SlogLevel translates the configured log level. Validate has already
// checked it parses.
func (c *Config) SlogLevel() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q (want debug, info, warn or error)", s)
	}
	return l, nil
}
