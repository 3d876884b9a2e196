package session

import (
	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/input/key"
	"github.com/dshills/mathdown/internal/merge"
	"github.com/dshills/mathdown/internal/navigate"
	"github.com/dshills/mathdown/internal/reconcile"
	"github.com/dshills/mathdown/internal/widget"
)

// HandleKey routes a key press. It reports whether the session handled
// the event; false defers to default host behavior.
func (s *Session) HandleKey(ev key.Event) bool {
	if ev.Modifiers != 0 {
		return false
	}
	switch ev.Key {
	case key.KeyLeft:
		return s.arrowInto(navigate.Backward)
	case key.KeyRight:
		return s.arrowInto(navigate.Forward)
	case key.KeyBackspace:
		return s.deleteToward(navigate.Backward)
	case key.KeyDelete:
		return s.deleteToward(navigate.Forward)
	}
	return false
}

// HandleClick expands the clicked widget, mapping the horizontal click
// fraction within its bounding box to a raw-text caret offset.
func (s *Session) HandleClick(w *doctree.Widget, fraction float64) bool {
	if w == nil {
		return false
	}
	off := widget.ClickOffset(fraction, len(w.Raw()))
	return s.expand(w, off) != nil
}

// HandleInput records a content-modifying edit: it re-arms the
// interactive reconciliation debounce and the persistence save.
func (s *Session) HandleInput() {
	s.sched.ScheduleReconcile(reconcile.Interactive)
	s.sched.SchedulePersist()
	s.refreshPreview()
}

// HandleFocusLost runs an exhaustive pass immediately so nothing is
// left unconverted while the editor is out of focus.
func (s *Session) HandleFocusLost() {
	s.sched.RunNow(reconcile.Exhaustive)
}

// HandleSelectionChange tracks the caret. When the caret leaves the
// active edit's segment the edit ends and an exhaustive pass converts
// whatever the segment now holds. The preview always follows the
// caret.
func (s *Session) HandleSelectionChange() {
	if s.active != nil {
		seg := s.active.Segment
		left := !doctree.Attached(s.doc, seg)
		if !left {
			p, ok := navigate.CollapsedRange(s.sel, s.doc)
			t, _ := p.Container.(*doctree.Text)
			left = !ok || t != seg
		}
		if left {
			log.Debugf("active edit on segment %s ended", seg.ID())
			s.active = nil
			s.sched.ScheduleReconcile(reconcile.Exhaustive)
		}
	}
	s.refreshPreview()
}

// arrowInto collapses the widget adjacent to the caret and enters it
// from the matching edge.
func (s *Session) arrowInto(dir navigate.Direction) bool {
	p, ok := navigate.CollapsedRange(s.sel, s.doc)
	if !ok {
		return false
	}
	w := navigate.AdjacentWidget(p, dir)
	if w == nil {
		return false
	}
	edge := widget.EdgeRight
	if dir == navigate.Forward {
		edge = widget.EdgeLeft
	}
	off := widget.EnterOffset(edge, w.Display(), len(w.Raw()))
	return s.expand(w, off) != nil
}

// deleteToward handles Backspace (backward) and Delete (forward). A
// widget adjacent to the caret takes priority: it collapses to raw
// text and exactly one character is deleted at the facing end. Only
// when no widget is adjacent does a block-boundary merge apply; never
// both in one keystroke.
func (s *Session) deleteToward(dir navigate.Direction) bool {
	p, ok := navigate.CollapsedRange(s.sel, s.doc)
	if !ok {
		return false
	}

	if w := navigate.AdjacentWidget(p, dir); w != nil {
		raw := w.Raw()
		seg, _, err := s.widgets.Collapse(w, 0)
		if err != nil {
			log.Errorf("collapse widget %s: %v", w.ID(), err)
			return false
		}
		if dir == navigate.Forward {
			seg.SetText(raw[1:])
			s.sel.SetCollapsed(doctree.Point{Container: seg, Offset: 0})
		} else {
			seg.SetText(raw[:len(raw)-1])
			s.sel.SetCollapsed(doctree.Point{Container: seg, Offset: seg.Len()})
		}
		s.active = &ActiveEdit{Segment: seg}
		s.host.Focus()
		s.sched.SchedulePersist()
		s.refreshPreview()
		return true
	}

	block := navigate.NearestBlockAncestor(p.Container)
	if block == nil {
		return false
	}
	var caret doctree.Point
	var merged bool
	if dir == navigate.Backward {
		if !navigate.IsAtBlockStart(p, block) {
			return false
		}
		caret, merged = merge.Backward(s.doc, block)
	} else {
		if !navigate.IsAtBlockEnd(p, block) {
			return false
		}
		caret, merged = merge.Forward(s.doc, block)
	}
	if !merged {
		return false
	}
	s.sel.SetCollapsed(caret)
	s.sched.SchedulePersist()
	s.refreshPreview()
	return true
}

// expand collapses w to its raw text, records the active edit, and
// places the caret at off within the raw content.
func (s *Session) expand(w *doctree.Widget, off int) *doctree.Text {
	seg, off, err := s.widgets.Collapse(w, off)
	if err != nil {
		log.Errorf("collapse widget %s: %v", w.ID(), err)
		return nil
	}
	log.Debugf("widget %s collapsed into segment %s", w.ID(), seg.ID())
	s.active = &ActiveEdit{Segment: seg}
	s.sel.SetCollapsed(doctree.Point{Container: seg, Offset: off})
	s.host.Focus()
	s.sched.SchedulePersist()
	s.refreshPreview()
	return seg
}
