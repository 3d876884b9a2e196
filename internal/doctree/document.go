package doctree

// Document is the root of the tree: an ordered sequence of blocks.
type Document struct {
	id     string
	blocks []*Block
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{id: newID()}
}

// ID returns the document's identity.
func (d *Document) ID() string { return d.id }

// Parent returns nil; the document is the root.
func (d *Document) Parent() Node { return nil }

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Block returns the block at index i, or nil when out of range.
func (d *Document) Block(i int) *Block {
	if i < 0 || i >= len(d.blocks) {
		return nil
	}
	return d.blocks[i]
}

// Blocks returns the document's blocks in order. The slice is shared;
// callers must not append to it.
func (d *Document) Blocks() []*Block { return d.blocks }

// Index returns b's position, or -1 when b is not a child.
func (d *Document) Index(b *Block) int {
	for i, c := range d.blocks {
		if c == b {
			return i
		}
	}
	return -1
}

// Append adds b at the end of the document.
func (d *Document) Append(b *Block) {
	b.detach()
	b.parent = d
	d.blocks = append(d.blocks, b)
}

// InsertAt inserts b at index i, clamped to [0, Len].
func (d *Document) InsertAt(i int, b *Block) {
	if i < 0 {
		i = 0
	}
	if i > len(d.blocks) {
		i = len(d.blocks)
	}
	b.detach()
	b.parent = d
	d.blocks = append(d.blocks, nil)
	copy(d.blocks[i+1:], d.blocks[i:])
	d.blocks[i] = b
}

// Remove detaches b from the document. It reports whether b was a child.
func (d *Document) Remove(b *Block) bool {
	i := d.Index(b)
	if i < 0 {
		return false
	}
	copy(d.blocks[i:], d.blocks[i+1:])
	d.blocks[len(d.blocks)-1] = nil
	d.blocks = d.blocks[:len(d.blocks)-1]
	b.parent = nil
	return true
}
