package doctree

// Point is a position in the tree: a container node and an offset. For
// Text containers the offset is a byte offset into the content; for
// Block and Document containers it is a child index.
type Point struct {
	Container Node
	Offset    int
}

// Valid reports whether the point has a container and a non-negative,
// in-bounds offset.
func (p Point) Valid() bool {
	if p.Container == nil || p.Offset < 0 {
		return false
	}
	switch c := p.Container.(type) {
	case *Text:
		return p.Offset <= c.Len()
	case *Block:
		return p.Offset <= c.Len()
	case *Document:
		return p.Offset <= c.Len()
	}
	return false
}

// Selection abstracts the host editing surface's selection. The core
// reads and writes collapsed positions only.
type Selection interface {
	// Collapsed returns the caret position when the selection is
	// collapsed; ok is false for extended or absent selections.
	Collapsed() (Point, bool)

	// SetCollapsed moves the caret to p, collapsing any extent.
	SetCollapsed(p Point)
}

// Caret is the canonical in-memory Selection: a single optional
// collapsed point.
type Caret struct {
	point Point
	set   bool
}

// NewCaret creates an empty caret with no position.
func NewCaret() *Caret { return &Caret{} }

// Collapsed returns the caret position, if any.
func (c *Caret) Collapsed() (Point, bool) { return c.point, c.set }

// SetCollapsed moves the caret to p.
func (c *Caret) SetCollapsed(p Point) {
	c.point = p
	c.set = true
}

// Clear removes the caret position entirely.
func (c *Caret) Clear() {
	c.point = Point{}
	c.set = false
}
