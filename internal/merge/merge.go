// Package merge restructures adjacent blocks when delete keys are
// pressed at block boundaries.
//
// Both operations report not-handled when no qualifying sibling block
// exists, deferring to default host behavior. Scheduling the
// persistence save after a successful merge is the caller's concern.
package merge

import "github.com/dshills/mathdown/internal/doctree"

// Backward merges b into its nearest previous non-blank sibling:
// Backspace at block start. All of b's children are appended to the
// sibling, blank blocks between the two are dropped, and b is removed.
// The returned caret sits immediately after the sibling's last
// pre-merge node, or at its start if it was empty.
func Backward(doc *doctree.Document, b *doctree.Block) (doctree.Point, bool) {
	i := doc.Index(b)
	if i <= 0 {
		return doctree.Point{}, false
	}
	j := i - 1
	for j >= 0 && doc.Block(j).IsBlank() {
		j--
	}
	if j < 0 {
		return doctree.Point{}, false
	}
	prev := doc.Block(j)

	// Drop blank blocks between the merge target and b.
	for doc.Block(j+1) != b {
		doc.Remove(doc.Block(j + 1))
	}

	caret := doctree.Point{Container: prev, Offset: prev.Len()}
	moveChildren(b, prev)
	doc.Remove(b)
	return caret, true
}

// Forward pulls the nearest next non-blank sibling's children into b:
// Delete at block end. The returned caret sits immediately before the
// first moved node.
func Forward(doc *doctree.Document, b *doctree.Block) (doctree.Point, bool) {
	i := doc.Index(b)
	if i < 0 || i == doc.Len()-1 {
		return doctree.Point{}, false
	}
	j := i + 1
	for j < doc.Len() && doc.Block(j).IsBlank() {
		j++
	}
	if j >= doc.Len() {
		return doctree.Point{}, false
	}
	next := doc.Block(j)

	for doc.Block(i+1) != next {
		doc.Remove(doc.Block(i + 1))
	}

	caret := doctree.Point{Container: b, Offset: b.Len()}
	moveChildren(next, b)
	doc.Remove(next)
	return caret, true
}

// moveChildren appends all of src's children to dst, preserving order.
func moveChildren(src, dst *doctree.Block) {
	children := make([]doctree.Inline, len(src.Children()))
	copy(children, src.Children())
	for _, c := range children {
		dst.Append(c)
	}
}
