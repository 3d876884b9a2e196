package session

import (
	"fmt"
	"strings"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/navigate"
)

// Toolbar command names.
const (
	CmdBold    = "bold"
	CmdItalic  = "italic"
	CmdHeading = "heading"
)

// Command is a generic formatting command. The session does not
// interpret it; the host surface applies it with its own primitives.
type Command struct {
	// Name is one of the Cmd constants.
	Name string

	// Level is the heading depth for CmdHeading.
	Level int
}

// ExecCommand forwards a toolbar command to the host and schedules the
// follow-up reconciliation and save.
func (s *Session) ExecCommand(cmd Command) error {
	if err := s.host.ExecCommand(cmd); err != nil {
		return fmt.Errorf("exec %s: %w", cmd.Name, err)
	}
	s.HandleInput()
	return nil
}

// InsertText inserts plain text through the host's editing primitive.
func (s *Session) InsertText(text string) error {
	if err := s.host.InsertText(text); err != nil {
		return err
	}
	s.HandleInput()
	return nil
}

// MathRequest describes an expression to insert at the caret.
type MathRequest struct {
	Expression string
	Display    bool
}

// InsertMath materializes the expression directly into a widget at the
// caret, splitting the surrounding text segment when needed. The caret
// lands immediately after the new widget.
func (s *Session) InsertMath(req MathRequest) error {
	tex := strings.TrimSpace(req.Expression)
	if tex == "" {
		return ErrEmptyExpression
	}
	w := s.widgets.Materialize(tex, req.Display)

	p, ok := navigate.CollapsedRange(s.sel, s.doc)
	if !ok {
		block := s.lastEditableBlock()
		block.Append(w)
		s.sel.SetCollapsed(doctree.Point{Container: block, Offset: block.Len()})
	} else if !s.insertAt(p, w) {
		return fmt.Errorf("insert math: caret container cannot hold a widget")
	}

	s.sched.SchedulePersist()
	s.refreshPreview()
	return nil
}

func (s *Session) insertAt(p doctree.Point, w *doctree.Widget) bool {
	switch c := p.Container.(type) {
	case *doctree.Text:
		block, ok := c.Parent().(*doctree.Block)
		if !ok {
			return false
		}
		text := c.Text()
		var repl []doctree.Inline
		if p.Offset > 0 {
			repl = append(repl, doctree.NewText(text[:p.Offset]))
		}
		repl = append(repl, w)
		if p.Offset < len(text) {
			repl = append(repl, doctree.NewText(text[p.Offset:]))
		}
		block.Replace(c, repl...)
		if s.active != nil && s.active.Segment == c {
			s.active = nil
		}
		s.sel.SetCollapsed(doctree.Point{Container: block, Offset: block.Index(w) + 1})
		return true

	case *doctree.Block:
		c.InsertAt(p.Offset, w)
		s.sel.SetCollapsed(doctree.Point{Container: c, Offset: p.Offset + 1})
		return true

	case *doctree.Document:
		block := doctree.NewBlock(doctree.BlockParagraph)
		block.Append(w)
		c.InsertAt(p.Offset, block)
		s.sel.SetCollapsed(doctree.Point{Container: block, Offset: 1})
		return true
	}
	return false
}

// lastEditableBlock returns the last paragraph or heading, appending a
// fresh paragraph when none exists.
func (s *Session) lastEditableBlock() *doctree.Block {
	for i := s.doc.Len() - 1; i >= 0; i-- {
		b := s.doc.Block(i)
		switch b.Kind() {
		case doctree.BlockParagraph, doctree.BlockHeading:
			return b
		}
	}
	b := doctree.NewBlock(doctree.BlockParagraph)
	s.doc.Append(b)
	return b
}
