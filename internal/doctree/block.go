package doctree

import "strings"

// BlockKind identifies the flavor of a block element.
type BlockKind uint8

const (
	// BlockParagraph is an ordinary paragraph.
	BlockParagraph BlockKind = iota
	// BlockHeading is a heading; Level carries the depth (1-6).
	BlockHeading
	// BlockCode is a fenced or indented code block. Never scanned.
	BlockCode
	// BlockRaw is a non-rendering block (raw HTML and the like). Never
	// scanned.
	BlockRaw
)

// String returns the kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockCode:
		return "code"
	case BlockRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Block is a direct child of the document: a container of inline nodes.
type Block struct {
	id       string
	parent   *Document
	kind     BlockKind
	level    int
	fence    string // info string for code blocks
	children []Inline
}

// NewBlock creates an empty block of the given kind.
func NewBlock(kind BlockKind) *Block {
	return &Block{id: newID(), kind: kind}
}

// NewHeading creates an empty heading block. Level is clamped to 1-6.
func NewHeading(level int) *Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return &Block{id: newID(), kind: BlockHeading, level: level}
}

// ID returns the block's identity.
func (b *Block) ID() string { return b.id }

// Parent returns the owning document, or nil when detached.
func (b *Block) Parent() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Kind returns the block kind.
func (b *Block) Kind() BlockKind { return b.kind }

// Level returns the heading level, or 0 for non-headings.
func (b *Block) Level() int { return b.level }

// SetLevel updates the heading level, clamped to 1-6. No-op on
// non-heading blocks.
func (b *Block) SetLevel(level int) {
	if b.kind != BlockHeading {
		return
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	b.level = level
}

// Fence returns the code block's info string ("go", "python", ...).
func (b *Block) Fence() string { return b.fence }

// SetFence sets the code block's info string.
func (b *Block) SetFence(info string) { b.fence = info }

// Len returns the number of inline children.
func (b *Block) Len() int { return len(b.children) }

// Child returns the inline child at index i, or nil when out of range.
func (b *Block) Child(i int) Inline {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

// Children returns the inline children in order. The slice is shared;
// callers must not append to it.
func (b *Block) Children() []Inline { return b.children }

// Index returns n's position among b's children, or -1.
func (b *Block) Index(n Inline) int {
	for i, c := range b.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Append adds n at the end of the inline sequence.
func (b *Block) Append(n Inline) {
	detachInline(n)
	attachInline(n, b)
	b.children = append(b.children, n)
}

// InsertAt inserts n at index i, clamped to [0, Len].
func (b *Block) InsertAt(i int, n Inline) {
	if i < 0 {
		i = 0
	}
	if i > len(b.children) {
		i = len(b.children)
	}
	detachInline(n)
	attachInline(n, b)
	b.children = append(b.children, nil)
	copy(b.children[i+1:], b.children[i:])
	b.children[i] = n
}

// Remove detaches n from the block. It reports whether n was a child.
func (b *Block) Remove(n Inline) bool {
	i := b.Index(n)
	if i < 0 {
		return false
	}
	copy(b.children[i:], b.children[i+1:])
	b.children[len(b.children)-1] = nil
	b.children = b.children[:len(b.children)-1]
	attachInline(n, nil)
	return true
}

// Replace substitutes old with repl (in order) at old's position. It
// reports whether old was a child.
func (b *Block) Replace(old Inline, repl ...Inline) bool {
	i := b.Index(old)
	if i < 0 {
		return false
	}
	b.Remove(old)
	for j, n := range repl {
		b.InsertAt(i+j, n)
	}
	return true
}

// Raw returns the concatenated raw markup of the inline children.
func (b *Block) Raw() string {
	var sb strings.Builder
	for _, c := range b.children {
		sb.WriteString(c.Raw())
	}
	return sb.String()
}

// IsBlank reports whether the block has no semantically significant
// content: no widgets and only whitespace text.
func (b *Block) IsBlank() bool {
	for _, c := range b.children {
		if _, ok := c.(*Widget); ok {
			return false
		}
		if strings.TrimSpace(c.Raw()) != "" {
			return false
		}
	}
	return true
}

func (b *Block) detach() {
	if b.parent != nil {
		b.parent.Remove(b)
	}
}

func detachInline(n Inline) {
	switch v := n.(type) {
	case *Text:
		if v.parent != nil {
			v.parent.Remove(v)
		}
	case *Widget:
		if v.parent != nil {
			v.parent.Remove(v)
		}
	}
}

func attachInline(n Inline, b *Block) {
	switch v := n.(type) {
	case *Text:
		v.parent = b
	case *Widget:
		v.parent = b
	}
}
