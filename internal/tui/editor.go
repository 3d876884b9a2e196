package tui

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/navigate"
	"github.com/dshills/mathdown/internal/session"
)

// ErrNoCaret indicates an editing primitive was invoked without a
// caret position.
var ErrNoCaret = errors.New("tui: no caret position")

// Editor supplies the host editing primitives: plain-text insertion,
// formatting commands, and default caret movement and deletion. Math
// semantics stay with the session; the editor only touches text.
type Editor struct {
	caret *doctree.Caret
	sess  *session.Session
}

// NewEditor creates an editor around the shared caret. Bind must be
// called once the session exists.
func NewEditor(caret *doctree.Caret) *Editor {
	return &Editor{caret: caret}
}

// Bind attaches the session. The session is constructed after the
// editor because it requires the editor as its host.
func (e *Editor) Bind(s *session.Session) { e.sess = s }

func (e *Editor) doc() *doctree.Document { return e.sess.Document() }

// Focus is a no-op: a terminal surface cannot lose focus to a widget.
func (e *Editor) Focus() {}

// InsertText splices text at the caret.
func (e *Editor) InsertText(text string) error {
	p, ok := e.caret.Collapsed()
	if !ok {
		return ErrNoCaret
	}
	switch c := p.Container.(type) {
	case *doctree.Text:
		s := c.Text()
		c.SetText(s[:p.Offset] + text + s[p.Offset:])
		e.caret.SetCollapsed(doctree.Point{Container: c, Offset: p.Offset + len(text)})
		return nil
	case *doctree.Block:
		t := doctree.NewText(text)
		c.InsertAt(p.Offset, t)
		e.caret.SetCollapsed(doctree.Point{Container: t, Offset: len(text)})
		return nil
	}
	return fmt.Errorf("tui: cannot insert into %T", p.Container)
}

// ExecCommand applies a formatting command at the caret.
func (e *Editor) ExecCommand(cmd session.Command) error {
	switch cmd.Name {
	case session.CmdBold:
		return e.wrapMarker("**")
	case session.CmdItalic:
		return e.wrapMarker("*")
	case session.CmdHeading:
		return e.setHeading(cmd.Level)
	}
	return fmt.Errorf("tui: unknown command %q", cmd.Name)
}

// wrapMarker inserts a marker pair and leaves the caret between them.
func (e *Editor) wrapMarker(m string) error {
	if err := e.InsertText(m + m); err != nil {
		return err
	}
	p, _ := e.caret.Collapsed()
	e.caret.SetCollapsed(doctree.Point{Container: p.Container, Offset: p.Offset - len(m)})
	return nil
}

// setHeading replaces the caret's block with a heading of the given
// level, keeping its children. Level 0 demotes back to a paragraph.
func (e *Editor) setHeading(level int) error {
	p, ok := e.caret.Collapsed()
	if !ok {
		return ErrNoCaret
	}
	block := navigate.NearestBlockAncestor(p.Container)
	if block == nil {
		return ErrNoCaret
	}

	if block.Kind() == doctree.BlockHeading && level > 0 {
		block.SetLevel(level)
		return nil
	}

	var repl *doctree.Block
	if level > 0 {
		repl = doctree.NewHeading(level)
	} else {
		repl = doctree.NewBlock(doctree.BlockParagraph)
	}
	doc := e.doc()
	i := doc.Index(block)
	if i < 0 {
		return ErrNoCaret
	}
	children := make([]doctree.Inline, len(block.Children()))
	copy(children, block.Children())
	for _, c := range children {
		repl.Append(c)
	}
	doc.InsertAt(i, repl)
	doc.Remove(block)

	// A block-anchored caret followed the dead block; re-anchor it.
	if p.Container == doctree.Node(block) {
		e.caret.SetCollapsed(doctree.Point{Container: repl, Offset: p.Offset})
	}
	return nil
}

// DeleteRune removes one rune next to the caret in the given
// direction. It reports whether anything was deleted.
func (e *Editor) DeleteRune(dir navigate.Direction) bool {
	p, ok := e.caret.Collapsed()
	if !ok {
		return false
	}
	t, ok := p.Container.(*doctree.Text)
	if !ok {
		return false
	}
	s := t.Text()
	if dir == navigate.Forward {
		if p.Offset >= len(s) {
			return false
		}
		_, n := utf8.DecodeRuneInString(s[p.Offset:])
		t.SetText(s[:p.Offset] + s[p.Offset+n:])
		return true
	}
	if p.Offset <= 0 {
		return false
	}
	_, n := utf8.DecodeLastRuneInString(s[:p.Offset])
	t.SetText(s[:p.Offset-n] + s[p.Offset:])
	e.caret.SetCollapsed(doctree.Point{Container: t, Offset: p.Offset - n})
	return true
}

// MoveCaret steps the caret one rune, crossing into adjacent segments
// and blocks at the edges. Widget-adjacent moves never reach here; the
// session intercepts those.
func (e *Editor) MoveCaret(dir navigate.Direction) {
	p, ok := e.caret.Collapsed()
	if !ok {
		if d := e.doc(); d.Len() > 0 {
			e.caret.SetCollapsed(doctree.Point{Container: d.Block(0), Offset: 0})
		}
		return
	}

	if t, ok := p.Container.(*doctree.Text); ok {
		s := t.Text()
		if dir == navigate.Forward && p.Offset < len(s) {
			_, n := utf8.DecodeRuneInString(s[p.Offset:])
			e.caret.SetCollapsed(doctree.Point{Container: t, Offset: p.Offset + n})
			return
		}
		if dir == navigate.Backward && p.Offset > 0 {
			_, n := utf8.DecodeLastRuneInString(s[:p.Offset])
			e.caret.SetCollapsed(doctree.Point{Container: t, Offset: p.Offset - n})
			return
		}
		block, ok := t.Parent().(*doctree.Block)
		if !ok {
			return
		}
		i := block.Index(t)
		if dir == navigate.Forward {
			e.enterFrom(block, i+1, dir)
		} else {
			e.enterFrom(block, i, dir)
		}
		return
	}

	if b, ok := p.Container.(*doctree.Block); ok {
		e.enterFrom(b, p.Offset, dir)
	}
}

// enterFrom places the caret at child boundary idx of block, stepping
// into the adjacent text segment or the neighboring block.
func (e *Editor) enterFrom(block *doctree.Block, idx int, dir navigate.Direction) {
	if dir == navigate.Forward {
		if t, ok := block.Child(idx).(*doctree.Text); ok {
			e.caret.SetCollapsed(doctree.Point{Container: t, Offset: 0})
			return
		}
		if idx < block.Len() {
			e.caret.SetCollapsed(doctree.Point{Container: block, Offset: idx})
			return
		}
		e.moveToBlock(e.doc().Index(block)+1, dir)
		return
	}

	if t, ok := block.Child(idx - 1).(*doctree.Text); ok {
		e.caret.SetCollapsed(doctree.Point{Container: t, Offset: t.Len()})
		return
	}
	if idx > 0 {
		e.caret.SetCollapsed(doctree.Point{Container: block, Offset: idx})
		return
	}
	e.moveToBlock(e.doc().Index(block)-1, dir)
}

// moveToBlock lands the caret at the near edge of block i.
func (e *Editor) moveToBlock(i int, dir navigate.Direction) {
	b := e.doc().Block(i)
	if b == nil {
		return
	}
	if dir == navigate.Forward {
		if t, ok := b.Child(0).(*doctree.Text); ok {
			e.caret.SetCollapsed(doctree.Point{Container: t, Offset: 0})
		} else {
			e.caret.SetCollapsed(doctree.Point{Container: b, Offset: 0})
		}
		return
	}
	if t, ok := b.Child(b.Len() - 1).(*doctree.Text); ok {
		e.caret.SetCollapsed(doctree.Point{Container: t, Offset: t.Len()})
	} else {
		e.caret.SetCollapsed(doctree.Point{Container: b, Offset: b.Len()})
	}
}

// SplitBlock breaks the caret's block in two at the caret: the Enter
// key. The caret lands at the start of the new paragraph.
func (e *Editor) SplitBlock() bool {
	p, ok := e.caret.Collapsed()
	if !ok {
		return false
	}
	block := navigate.NearestBlockAncestor(p.Container)
	if block == nil {
		return false
	}
	doc := e.doc()
	bi := doc.Index(block)
	if bi < 0 {
		return false
	}

	nb := doctree.NewBlock(doctree.BlockParagraph)
	switch c := p.Container.(type) {
	case *doctree.Text:
		rest := c.Text()[p.Offset:]
		c.SetText(c.Text()[:p.Offset])
		i := block.Index(c)
		moved := trailing(block, i+1)
		t := doctree.NewText(rest)
		nb.Append(t)
		for _, m := range moved {
			nb.Append(m)
		}
		doc.InsertAt(bi+1, nb)
		e.caret.SetCollapsed(doctree.Point{Container: t, Offset: 0})
		return true

	case *doctree.Block:
		moved := trailing(block, p.Offset)
		for _, m := range moved {
			nb.Append(m)
		}
		doc.InsertAt(bi+1, nb)
		e.caret.SetCollapsed(doctree.Point{Container: nb, Offset: 0})
		return true
	}
	return false
}

// trailing returns block children from index i on.
func trailing(b *doctree.Block, i int) []doctree.Inline {
	if i < 0 {
		i = 0
	}
	var out []doctree.Inline
	for j := i; j < b.Len(); j++ {
		out = append(out, b.Child(j))
	}
	return out
}
