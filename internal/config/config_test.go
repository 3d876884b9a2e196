package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Store.Backend != BackendJSON {
		t.Errorf("default backend = %q", cfg.Store.Backend)
	}
	if cfg.ReconcileDelay() != 300*time.Millisecond {
		t.Errorf("ReconcileDelay = %v", cfg.ReconcileDelay())
	}
	if cfg.PersistDelay() != 800*time.Millisecond {
		t.Errorf("PersistDelay = %v", cfg.PersistDelay())
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document.Key != "default" {
		t.Errorf("key = %q", cfg.Document.Key)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	src := `
[document]
key = "thesis"

[store]
backend = "sqlite"
path = "/tmp/docs.db"

[reconcile]
debounce_ms = 150
persist_ms = 400

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document.Key != "thesis" {
		t.Errorf("key = %q", cfg.Document.Key)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.Path != "/tmp/docs.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.ReconcileDelay() != 150*time.Millisecond {
		t.Errorf("ReconcileDelay = %v", cfg.ReconcileDelay())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	// Unspecified sections keep defaults.
	if !cfg.Preview.Enabled {
		t.Error("preview default lost")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MATHDOWN_DOC_KEY", "env-doc")
	t.Setenv("MATHDOWN_STORE_BACKEND", "sqlite")
	t.Setenv("MATHDOWN_DEBOUNCE_MS", "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document.Key != "env-doc" {
		t.Errorf("key = %q", cfg.Document.Key)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Reconcile.DebounceMS != 42 {
		t.Errorf("debounce = %d", cfg.Reconcile.DebounceMS)
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("MATHDOWN_STORE_BACKEND", "redis")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("[store\nbackend ="), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("[document]\nkey = \"a\"\n"), 0o644)

	got := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config) {
		select {
		case got <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	os.WriteFile(path, []byte("[document]\nkey = \"b\"\n"), 0o644)

	select {
	case cfg := <-got:
		if cfg.Document.Key != "b" {
			t.Errorf("reloaded key = %q", cfg.Document.Key)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within timeout")
	}
}
