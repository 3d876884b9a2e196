package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONStore keeps documents in a single JSON file under a "documents"
// object. Writes are atomic: a temp file is renamed over the old one.
type JSONStore struct {
	path   string
	closed bool
}

// NewJSONStore creates a store backed by the file at path. The file
// is created on first save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load returns the document stored under key.
func (s *JSONStore) Load(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read store: %w", err)
	}
	res := gjson.GetBytes(data, "documents."+escapeKey(key))
	if !res.Exists() {
		return "", false, nil
	}
	return res.String(), true, nil
}

// Save writes the document under key.
func (s *JSONStore) Save(key, value string) error {
	if s.closed {
		return ErrClosed
	}
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read store: %w", err)
	}
	out, err := sjson.SetBytes(data, "documents."+escapeKey(key), value)
	if err != nil {
		return fmt.Errorf("set document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".mathdown-store-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Close marks the store closed. The file needs no teardown.
func (s *JSONStore) Close() error {
	s.closed = true
	return nil
}

// escapeKey protects path syntax characters in document keys.
func escapeKey(key string) string {
	key = strings.ReplaceAll(key, "\\", "\\\\")
	key = strings.ReplaceAll(key, ".", "\\.")
	key = strings.ReplaceAll(key, "*", "\\*")
	key = strings.ReplaceAll(key, "?", "\\?")
	return key
}
