// Package render defines the math rendering engine boundary.
//
// The editor core treats rendering as an external collaborator: an
// Engine turns a TeX expression into visual content or fails. Failures
// never propagate past the widget layer; the widget falls back to its
// raw delimited form and stays atomic.
package render

import "errors"

// ErrRenderFailed indicates the engine could not produce visual output
// for an expression.
var ErrRenderFailed = errors.New("render failed")

// Engine renders a TeX expression into visual content. displayMode
// selects block-level layout. Implementations must be synchronous and
// side-effect free; a failed render returns an error and the caller
// falls back to raw text.
type Engine interface {
	Render(tex string, displayMode bool) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(tex string, displayMode bool) (string, error)

// Render calls f.
func (f EngineFunc) Render(tex string, displayMode bool) (string, error) {
	return f(tex, displayMode)
}

// FailEngine always fails. Useful for exercising fallback paths.
type FailEngine struct{}

// Render returns ErrRenderFailed.
func (FailEngine) Render(string, bool) (string, error) {
	return "", ErrRenderFailed
}
