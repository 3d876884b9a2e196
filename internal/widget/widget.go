// Package widget manages the lifecycle of atomic math widgets.
//
// A Manager materializes raw TeX into rendered doctree.Widget leaves
// and collapses widgets back into raw-text segments for editing. The
// two operations are inverses: collapsing and immediately
// re-materializing without intervening edits reproduces the same
// widget content.
package widget

import (
	"errors"
	"math"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/render"
)

// ErrDetached indicates an operation on a widget that is not attached
// to a block.
var ErrDetached = errors.New("widget is not attached to a block")

// Edge identifies which side of a widget the caret enters from.
type Edge uint8

const (
	// EdgeLeft enters just past the opening delimiter.
	EdgeLeft Edge = iota
	// EdgeRight enters just before the closing delimiter.
	EdgeRight
)

// Manager creates and destroys atomic widgets using a render engine.
type Manager struct {
	engine render.Engine
}

// NewManager creates a manager bound to engine.
func NewManager(engine render.Engine) *Manager {
	return &Manager{engine: engine}
}

// Materialize renders tex into a widget. On render failure the widget
// displays its literal raw delimited form; the expression is never
// lost and the widget stays atomic.
func (m *Manager) Materialize(tex string, display bool) *doctree.Widget {
	w := doctree.NewWidget(tex, display)
	out, err := m.engine.Render(tex, display)
	if err != nil {
		w.SetRendered(w.Raw())
		w.SetFailed(true)
		return w
	}
	w.SetRendered(out)
	return w
}

// Collapse replaces w in its block with a single text segment holding
// the exact raw delimited form. It returns the segment and the caret
// offset clamped to [0, len(raw)]. Recording the active edit state and
// restoring focus are the session's responsibility.
func (m *Manager) Collapse(w *doctree.Widget, caretOffset int) (*doctree.Text, int, error) {
	block, ok := w.Parent().(*doctree.Block)
	if !ok {
		return nil, 0, ErrDetached
	}
	raw := w.Raw()
	seg := doctree.NewText(raw)
	if !block.Replace(w, seg) {
		return nil, 0, ErrDetached
	}
	return seg, clamp(caretOffset, 0, len(raw)), nil
}

// ClickOffset maps the horizontal fraction of a click within a
// widget's bounding box to a raw-text caret offset.
func ClickOffset(fraction float64, rawLen int) int {
	off := int(math.Round(fraction * float64(rawLen)))
	return clamp(off, 0, rawLen)
}

// EnterOffset maps a boundary-navigation entry to a raw-text caret
// offset: just past the opening delimiter from the left, just before
// the closing delimiter from the right.
func EnterOffset(edge Edge, display bool, rawLen int) int {
	d := doctree.DelimLen(display)
	if edge == EdgeLeft {
		return clamp(d, 0, rawLen)
	}
	return clamp(rawLen-d, 0, rawLen)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
