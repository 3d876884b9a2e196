// Package preview renders a floating live preview of the math run
// under the caret.
//
// The panel tracks uncommitted expressions: the enclosing text
// segment's raw content is scanned directly on every selection change,
// independent of whether reconciliation has converted anything yet.
package preview

import (
	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/render"
	"github.com/dshills/mathdown/internal/scanner"
)

// Placement geometry, in host units.
const (
	// ViewportMargin is the minimum horizontal distance from the
	// viewport edges.
	ViewportMargin = 8
	// GapAbove separates the panel from the caret when placed above.
	GapAbove = 10
	// GapBelow separates the panel from the caret when flipped below.
	GapBelow = 12
	// TopMargin is the minimum headroom required to place above.
	TopMargin = 8
)

// Rect is an axis-aligned rectangle in host coordinates.
type Rect struct {
	X, Y, W, H int
}

// Size is a width/height pair.
type Size struct {
	W, H int
}

// Placement is the panel's resolved position.
type Placement struct {
	X, Y int
	// Below is true when there was insufficient headroom and the panel
	// flipped under the caret.
	Below bool
}

// Place positions a panel of the given size relative to the caret's
// bounding rectangle: preferred above the caret, flipped below when
// there is not enough room, horizontally clamped to the viewport.
func Place(caret Rect, panel Size, viewport Size) Placement {
	x := caret.X
	if max := viewport.W - ViewportMargin - panel.W; x > max {
		x = max
	}
	if x < ViewportMargin {
		x = ViewportMargin
	}

	y := caret.Y - GapAbove - panel.H
	below := false
	if y < TopMargin {
		below = true
		y = caret.Y + caret.H + GapBelow
	}
	return Placement{X: x, Y: y, Below: below}
}

// MatchAt returns the math match whose raw span contains the caret
// offset, inclusive of both edges.
func MatchAt(content string, caret int) (scanner.Match, bool) {
	sc := scanner.New(content)
	for sc.Scan() {
		m := sc.Match()
		if caret >= m.Start && caret <= m.End {
			return m, true
		}
		if m.Start > caret {
			break
		}
	}
	return scanner.Match{}, false
}

// Panel is the floating preview's content state. Geometry is resolved
// separately via Place once the host has measured the content.
type Panel struct {
	engine  render.Engine
	visible bool
	tex     string
	display bool
	content string
}

// NewPanel creates a hidden panel bound to engine.
func NewPanel(engine render.Engine) *Panel {
	return &Panel{engine: engine}
}

// Update re-evaluates the panel against the caret's segment and
// offset. It returns true when the panel is visible afterwards. A nil
// or non-scannable segment, or a caret outside any math span, hides
// the panel.
func (p *Panel) Update(seg *doctree.Text, caretOffset int) bool {
	if seg == nil || !doctree.Scannable(seg) {
		p.Hide()
		return false
	}
	m, ok := MatchAt(seg.Text(), caretOffset)
	if !ok {
		p.Hide()
		return false
	}

	p.visible = true
	p.tex = m.Tex
	p.display = m.Display
	out, err := p.engine.Render(m.Tex, m.Display)
	if err != nil {
		out = doctree.RawForm(m.Tex, m.Display)
	}
	p.content = out
	return true
}

// Hide makes the panel invisible and clears its content.
func (p *Panel) Hide() {
	p.visible = false
	p.tex = ""
	p.content = ""
	p.display = false
}

// Visible reports whether the panel should be drawn.
func (p *Panel) Visible() bool { return p.visible }

// Content returns the rendered visual content.
func (p *Panel) Content() string { return p.content }

// Tex returns the expression being previewed.
func (p *Panel) Tex() string { return p.tex }

// Display reports whether the previewed run is block-level.
func (p *Panel) Display() bool { return p.display }
