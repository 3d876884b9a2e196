package tui

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/mathdown/internal/doctree"
)

// span is a run of cells backed by one inline node. For text nodes
// start is the byte offset of the span within the node's content; for
// widgets the span shows the rendered form and start is 0.
type span struct {
	node  doctree.Inline
	text  string
	start int
	width int
}

// line is one visual row.
type line struct {
	block *doctree.Block
	spans []span
}

// layoutDocument flattens doc into visual lines no wider than width.
// Every block contributes at least one line, blank blocks included, so
// the caret always has a row to land on.
func layoutDocument(doc *doctree.Document, width int) []line {
	if width < 1 {
		width = 1
	}
	var lines []line
	for _, b := range doc.Blocks() {
		lines = append(lines, layoutBlock(b, width)...)
	}
	return lines
}

func layoutBlock(b *doctree.Block, width int) []line {
	cur := line{block: b}
	x := 0
	out := []line{}

	flush := func() {
		out = append(out, cur)
		cur = line{block: b}
		x = 0
	}

	for _, c := range b.Children() {
		switch n := c.(type) {
		case *doctree.Widget:
			w := uniseg.StringWidth(n.Rendered())
			if x > 0 && x+w > width {
				flush()
			}
			cur.spans = append(cur.spans, span{node: n, text: n.Rendered(), width: w})
			x += w

		case *doctree.Text:
			text := n.Text()
			off := 0
			for off <= len(text) {
				chunk, w := fitChunk(text[off:], width-x)
				if chunk == "" && len(text[off:]) > 0 {
					if x == 0 {
						// A single grapheme wider than the viewport
						// still has to go somewhere.
						chunk, w = firstGrapheme(text[off:])
					} else {
						flush()
						continue
					}
				}
				cur.spans = append(cur.spans, span{node: n, text: chunk, start: off, width: w})
				off += len(chunk)
				x += w
				if off >= len(text) {
					break
				}
			}
		}
	}
	flush()
	return out
}

// fitChunk returns the longest grapheme-aligned prefix of s that fits
// in avail cells.
func fitChunk(s string, avail int) (string, int) {
	if avail <= 0 {
		return "", 0
	}
	g := uniseg.NewGraphemes(s)
	bytes, width := 0, 0
	for g.Next() {
		w := g.Width()
		if width+w > avail {
			break
		}
		bytes += len(g.Str())
		width += w
	}
	return s[:bytes], width
}

func firstGrapheme(s string) (string, int) {
	g := uniseg.NewGraphemes(s)
	if !g.Next() {
		return "", 0
	}
	return g.Str(), g.Width()
}

// caretPosition maps the selection to (line index, cell x). The line
// index is -1 when the caret is absent or detached from the laid-out
// tree.
func caretPosition(lines []line, sel doctree.Selection) (int, int) {
	p, ok := sel.Collapsed()
	if !ok {
		return -1, 0
	}
	switch c := p.Container.(type) {
	case *doctree.Text:
		for i, ln := range lines {
			x := 0
			for _, sp := range ln.spans {
				if sp.node == doctree.Inline(c) &&
					p.Offset >= sp.start && p.Offset <= sp.start+len(sp.text) {
					return i, x + uniseg.StringWidth(sp.text[:p.Offset-sp.start])
				}
				x += sp.width
			}
		}
	case *doctree.Block:
		for i, ln := range lines {
			if ln.block != c {
				continue
			}
			// Cell x of child index p.Offset within this block.
			x := 0
			seen := 0
			for _, sp := range ln.spans {
				if sp.start == 0 {
					if seen == p.Offset {
						return i, x
					}
					seen++
				}
				x += sp.width
			}
			return i, x
		}
	}
	return -1, 0
}

// widgetAt returns the widget span under cell (x) of ln, along with
// the horizontal fraction of the hit within the span.
func widgetAt(ln line, x int) (*doctree.Widget, float64, bool) {
	cx := 0
	for _, sp := range ln.spans {
		if x >= cx && x < cx+sp.width {
			if w, ok := sp.node.(*doctree.Widget); ok {
				frac := 0.0
				if sp.width > 0 {
					frac = (float64(x-cx) + 0.5) / float64(sp.width)
				}
				return w, frac, true
			}
			return nil, 0, false
		}
		cx += sp.width
	}
	return nil, 0, false
}

// textPointAt maps cell x of ln to a caret point in a text node. The
// fallback is the end of the line's last text span.
func textPointAt(ln line, x int) (doctree.Point, bool) {
	cx := 0
	var last *span
	for i := range ln.spans {
		sp := &ln.spans[i]
		t, ok := sp.node.(*doctree.Text)
		if !ok {
			cx += sp.width
			continue
		}
		if x >= cx && x < cx+sp.width {
			off := sp.start
			g := uniseg.NewGraphemes(sp.text)
			for g.Next() {
				w := g.Width()
				if cx+w > x {
					break
				}
				cx += w
				off += len(g.Str())
			}
			return doctree.Point{Container: t, Offset: off}, true
		}
		cx += sp.width
		last = sp
	}
	if last != nil {
		t := last.node.(*doctree.Text)
		return doctree.Point{Container: t, Offset: last.start + len(last.text)}, true
	}
	if ln.block != nil {
		return doctree.Point{Container: ln.block, Offset: ln.block.Len()}, true
	}
	return doctree.Point{}, false
}
