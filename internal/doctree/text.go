package doctree

import "strings"

// Text is an editable text segment inside a block.
type Text struct {
	id     string
	parent *Block
	text   string
	code   bool
}

// NewText creates a text segment with the given content.
func NewText(s string) *Text {
	return &Text{id: newID(), text: s}
}

// NewCodeText creates an inline code span segment. Code spans are atomic
// for scanning purposes: delimiter runs inside them are never converted.
func NewCodeText(s string) *Text {
	return &Text{id: newID(), text: s, code: true}
}

// ID returns the segment's identity.
func (t *Text) ID() string { return t.id }

// Parent returns the owning block, or nil when detached.
func (t *Text) Parent() Node {
	if t.parent == nil {
		return nil
	}
	return t.parent
}

// Text returns the segment's content.
func (t *Text) Text() string { return t.text }

// SetText replaces the segment's content.
func (t *Text) SetText(s string) { t.text = s }

// Len returns the content length in bytes.
func (t *Text) Len() int { return len(t.text) }

// IsCode reports whether the segment is an inline code span.
func (t *Text) IsCode() bool { return t.code }

// IsBlank reports whether the content is empty or whitespace only.
func (t *Text) IsBlank() bool { return strings.TrimSpace(t.text) == "" }

// Raw returns the content verbatim.
func (t *Text) Raw() string { return t.text }

func (t *Text) inline() {}

// Scannable reports whether t may be scanned for math runs: not a code
// span, and not inside a code or non-rendering block.
func Scannable(t *Text) bool {
	if t == nil || t.code {
		return false
	}
	if t.parent == nil {
		return true
	}
	switch t.parent.kind {
	case BlockCode, BlockRaw:
		return false
	}
	return true
}
