package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/preview"
)

var (
	styleText    = tcell.StyleDefault
	styleHeading = tcell.StyleDefault.Bold(true)
	styleCode    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleWidget  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBroken  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	stylePreview = tcell.StyleDefault.Reverse(true).Bold(true)
)

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	contentH := h - 1
	if contentH < 1 {
		contentH = 1
	}

	a.lines = layoutDocument(a.sess.Document(), w)
	cl, cx := caretPosition(a.lines, a.caret)
	if cl >= 0 {
		if cl < a.scroll {
			a.scroll = cl
		}
		if cl >= a.scroll+contentH {
			a.scroll = cl - contentH + 1
		}
	}
	if a.scroll < 0 {
		a.scroll = 0
	}

	for y := 0; y < contentH; y++ {
		i := a.scroll + y
		if i >= len(a.lines) {
			break
		}
		a.drawLine(y, a.lines[i])
	}
	a.drawStatus(h-1, w)

	cy := cl - a.scroll
	if cl >= 0 && cy >= 0 && cy < contentH {
		a.screen.ShowCursor(cx, cy)
	} else {
		a.screen.HideCursor()
		cy = -1
	}
	a.drawPreview(w, h, cx, cy)
	a.screen.Show()
}

func (a *App) drawLine(y int, ln line) {
	x := 0
	for _, sp := range ln.spans {
		x = drawString(a.screen, x, y, sp.text, spanStyle(ln.block, sp))
	}
}

func spanStyle(b *doctree.Block, sp span) tcell.Style {
	if w, ok := sp.node.(*doctree.Widget); ok {
		if w.Failed() {
			return styleBroken
		}
		return styleWidget
	}
	if t, ok := sp.node.(*doctree.Text); ok && t.IsCode() {
		return styleCode
	}
	if b != nil {
		switch b.Kind() {
		case doctree.BlockHeading:
			return styleHeading
		case doctree.BlockCode, doctree.BlockRaw:
			return styleCode
		}
	}
	return styleText
}

func (a *App) drawStatus(y, w int) {
	var s string
	switch {
	case a.prompt != nil && a.prompt.confirm:
		s = "display block? [y/N]: " + a.prompt.expr
	case a.prompt != nil:
		s = "math: " + string(a.prompt.buf)
	case a.status != "":
		s = a.status
	default:
		blocks := a.sess.Document().Len()
		s = fmt.Sprintf(" %s — %d block(s)  ^D math  ^B bold  ^E export  ^Q quit",
			a.cfg.Document.Key, blocks)
	}
	x := drawString(a.screen, 0, y, s, styleStatus)
	for ; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// Cell-to-unit scale for running the pixel-space placement rules on a
// character grid. A cell is taller than it is wide, so the above/below
// flip lands one row off the caret.
const (
	cellW = 10
	cellH = 20
)

// previewCell maps a caret cell and panel width through the placement
// geometry and back to grid cells.
func previewCell(cx, cy, pw, w, h int) (x, y int) {
	pl := preview.Place(
		preview.Rect{X: cx * cellW, Y: cy * cellH, W: cellW, H: cellH},
		preview.Size{W: pw * cellW, H: cellH},
		preview.Size{W: w * cellW, H: h * cellH},
	)
	return pl.X / cellW, pl.Y / cellH
}

// drawPreview floats the live preview off the caret: above when there
// is headroom, flipped below otherwise.
func (a *App) drawPreview(w, h, cx, cy int) {
	p := a.sess.Preview()
	if !p.Visible() || cy < 0 {
		return
	}
	content := " " + p.Content() + " "
	pw := uniseg.StringWidth(content)
	if mw := a.cfg.Preview.MaxWidth; mw > 0 && pw > mw {
		pw = mw
	}

	x, y := previewCell(cx, cy, pw, w, h-1)
	if y < 0 || y >= h-1 {
		return
	}

	drawn := drawString(a.screen, x, y, content, stylePreview)
	for ; drawn < x+pw; drawn++ {
		a.screen.SetContent(drawn, y, ' ', nil, stylePreview)
	}
}

// drawString writes text at (x, y) one grapheme cluster at a time and
// returns the x just past the last cell.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
	return x
}
