// Package store persists serialized documents behind a small
// key/value interface.
//
// Two backends are provided: a single-file JSON store and a SQLite
// store. The session reads the document at startup and writes it on
// the debounced persistence timer; both operations are best-effort
// from the editor's point of view.
package store

import "errors"

// ErrClosed indicates an operation on a closed store.
var ErrClosed = errors.New("store is closed")

// Store is a persistent key/value document store.
type Store interface {
	// Load returns the value for key. ok is false when the key is
	// absent; that is not an error.
	Load(key string) (value string, ok bool, err error)

	// Save writes value under key, replacing any previous value.
	Save(key, value string) error

	// Close releases the backing resources.
	Close() error
}
