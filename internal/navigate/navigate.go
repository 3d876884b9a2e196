// Package navigate locates the caret relative to widgets and block
// boundaries.
//
// The navigator is read-only: it inspects the document tree and the
// host selection and answers positional questions. Mutations (widget
// collapse, block merges) belong to the widget and merge packages.
package navigate

import "github.com/dshills/mathdown/internal/doctree"

// Direction is a traversal direction along the inline sequence.
type Direction int8

const (
	// Backward looks toward the start of the document.
	Backward Direction = -1
	// Forward looks toward the end of the document.
	Forward Direction = 1
)

// CollapsedRange returns the selection's caret position when it is
// collapsed and anchored inside doc.
func CollapsedRange(sel doctree.Selection, doc *doctree.Document) (doctree.Point, bool) {
	p, ok := sel.Collapsed()
	if !ok || !p.Valid() {
		return doctree.Point{}, false
	}
	if !doctree.Attached(doc, p.Container) {
		return doctree.Point{}, false
	}
	return p, true
}

// AdjacentWidget returns the widget immediately adjacent to the caret
// in the given direction, or nil.
//
// For a text-segment caret the caret must sit exactly at the segment's
// edge facing dir; zero-length and whitespace-only sibling segments
// between the caret and the widget are skipped. For a block-anchored
// caret the child at the indicated offset is inspected directly.
func AdjacentWidget(p doctree.Point, dir Direction) *doctree.Widget {
	switch c := p.Container.(type) {
	case *doctree.Text:
		block, ok := c.Parent().(*doctree.Block)
		if !ok {
			return nil
		}
		if dir == Forward && p.Offset != c.Len() {
			return nil
		}
		if dir == Backward && p.Offset != 0 {
			return nil
		}
		i := block.Index(c)
		if i < 0 {
			return nil
		}
		for i += int(dir); i >= 0 && i < block.Len(); i += int(dir) {
			switch sib := block.Child(i).(type) {
			case *doctree.Widget:
				return sib
			case *doctree.Text:
				if !sib.IsBlank() {
					return nil
				}
				// Skip empty and whitespace-only segments.
			}
		}
		return nil

	case *doctree.Block:
		i := p.Offset
		if dir == Backward {
			i--
		}
		if w, ok := c.Child(i).(*doctree.Widget); ok {
			return w
		}
		return nil
	}
	return nil
}

// NearestBlockAncestor walks up from n to the block that is a direct
// child of the document. Returns n itself when n is a block.
func NearestBlockAncestor(n doctree.Node) *doctree.Block {
	if b, ok := n.(*doctree.Block); ok {
		return b
	}
	a := doctree.Ancestor(n, func(a doctree.Node) bool {
		_, ok := a.(*doctree.Block)
		return ok
	})
	if a == nil {
		return nil
	}
	return a.(*doctree.Block)
}

// IsAtBlockStart reports whether p sits at b's full-content start
// boundary: no content bytes precede it.
func IsAtBlockStart(p doctree.Point, b *doctree.Block) bool {
	switch c := p.Container.(type) {
	case *doctree.Block:
		if c != b {
			return false
		}
		return emptyRange(b, 0, p.Offset)
	case *doctree.Text:
		if NearestBlockAncestor(c) != b || p.Offset != 0 {
			return false
		}
		return emptyRange(b, 0, b.Index(c))
	}
	return false
}

// IsAtBlockEnd reports whether p sits at b's full-content end boundary.
func IsAtBlockEnd(p doctree.Point, b *doctree.Block) bool {
	switch c := p.Container.(type) {
	case *doctree.Block:
		if c != b {
			return false
		}
		return emptyRange(b, p.Offset, b.Len())
	case *doctree.Text:
		if NearestBlockAncestor(c) != b || p.Offset != c.Len() {
			return false
		}
		return emptyRange(b, b.Index(c)+1, b.Len())
	}
	return false
}

// emptyRange reports whether children [from, to) contribute no raw
// content.
func emptyRange(b *doctree.Block, from, to int) bool {
	for i := from; i < to; i++ {
		c := b.Child(i)
		if c == nil {
			continue
		}
		if c.Raw() != "" {
			return false
		}
	}
	return true
}
