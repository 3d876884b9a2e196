package session

import "errors"

// Missing collaborators are wiring errors: a session cannot start
// without them.
var (
	ErrNoEngine    = errors.New("session: render engine is required")
	ErrNoStore     = errors.New("session: document store is required")
	ErrNoSelection = errors.New("session: selection surface is required")
	ErrNoHost      = errors.New("session: host editor is required")
)

// ErrEmptyExpression rejects inserting an empty or whitespace-only
// math expression.
var ErrEmptyExpression = errors.New("session: empty math expression")
