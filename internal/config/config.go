// Package config loads editor configuration from TOML with
// environment overrides and supports live reload of the config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the full editor configuration.
type Config struct {
	Document  DocumentConfig  `toml:"document"`
	Store     StoreConfig     `toml:"store"`
	Reconcile ReconcileConfig `toml:"reconcile"`
	Preview   PreviewConfig   `toml:"preview"`
	Logging   LoggingConfig   `toml:"logging"`
}

// DocumentConfig identifies the document being edited.
type DocumentConfig struct {
	// Key is the store key the document loads from and saves to.
	Key string `toml:"key"`
}

// StoreConfig selects and locates the persistence backend.
type StoreConfig struct {
	// Backend is "json" or "sqlite".
	Backend string `toml:"backend"`
	// Path is the backing file location.
	Path string `toml:"path"`
}

// ReconcileConfig holds the scheduler debounce intervals.
type ReconcileConfig struct {
	// DebounceMS is the quiet period before an interactive pass.
	DebounceMS int `toml:"debounce_ms"`
	// PersistMS is the quiet period before a persistence save.
	PersistMS int `toml:"persist_ms"`
}

// PreviewConfig tunes the floating preview panel.
type PreviewConfig struct {
	// Enabled turns the live preview on.
	Enabled bool `toml:"enabled"`
	// MaxWidth caps the panel width in cells. 0 means unlimited.
	MaxWidth int `toml:"max_width"`
}

// LoggingConfig controls the commonlog backend.
type LoggingConfig struct {
	// Level is one of error, warning, info, debug.
	Level string `toml:"level"`
	// Path is the log file; empty discards log output.
	Path string `toml:"path"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Document: DocumentConfig{Key: "default"},
		Store: StoreConfig{
			Backend: BackendJSON,
			Path:    "mathdown.json",
		},
		Reconcile: ReconcileConfig{
			DebounceMS: 300,
			PersistMS:  800,
		},
		Preview: PreviewConfig{
			Enabled:  true,
			MaxWidth: 60,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error: defaults plus
// environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ReconcileDelay returns the interactive debounce as a duration.
func (c Config) ReconcileDelay() time.Duration {
	return time.Duration(c.Reconcile.DebounceMS) * time.Millisecond
}

// PersistDelay returns the persistence debounce as a duration.
func (c Config) PersistDelay() time.Duration {
	return time.Duration(c.Reconcile.PersistMS) * time.Millisecond
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Reconcile.DebounceMS <= 0 || c.Reconcile.PersistMS <= 0 {
		return fmt.Errorf("debounce intervals must be positive")
	}
	return nil
}

// envMapping maps MATHDOWN_* variables onto configuration fields.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("MATHDOWN_DOC_KEY"); ok {
		cfg.Document.Key = v
	}
	if v, ok := os.LookupEnv("MATHDOWN_STORE_BACKEND"); ok {
		cfg.Store.Backend = v
	}
	if v, ok := os.LookupEnv("MATHDOWN_STORE_PATH"); ok {
		cfg.Store.Path = v
	}
	if v, ok := os.LookupEnv("MATHDOWN_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv("MATHDOWN_LOG_PATH"); ok {
		cfg.Logging.Path = v
	}
	if v, ok := os.LookupEnv("MATHDOWN_DEBOUNCE_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Reconcile.DebounceMS = n
		}
	}
	if v, ok := os.LookupEnv("MATHDOWN_PERSIST_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Reconcile.PersistMS = n
		}
	}
}
