package doctree

// Widget is a rendered math expression. It is always a leaf in a
// block's inline sequence and is never edited as text: editing requires
// collapsing it back into a Text segment holding Raw().
type Widget struct {
	id       string
	parent   *Block
	tex      string
	display  bool
	rendered string
	failed   bool
}

// NewWidget creates a widget for the given expression. The rendered
// content starts as the raw delimited form until a render engine
// supplies better.
func NewWidget(tex string, display bool) *Widget {
	return &Widget{
		id:       newID(),
		tex:      tex,
		display:  display,
		rendered: RawForm(tex, display),
	}
}

// ID returns the widget's identity.
func (w *Widget) ID() string { return w.id }

// Parent returns the owning block, or nil when detached.
func (w *Widget) Parent() Node {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

// Tex returns the source expression without delimiters.
func (w *Widget) Tex() string { return w.tex }

// Display reports whether the widget is block-level ($$...$$).
func (w *Widget) Display() bool { return w.display }

// Rendered returns the visual content, or the raw delimited form when
// rendering failed.
func (w *Widget) Rendered() string { return w.rendered }

// SetRendered replaces the visual content.
func (w *Widget) SetRendered(s string) { w.rendered = s }

// Failed reports whether the last render attempt failed.
func (w *Widget) Failed() bool { return w.failed }

// SetFailed marks the widget's render outcome.
func (w *Widget) SetFailed(v bool) { w.failed = v }

// Raw returns the exact delimited text form the widget collapses to.
func (w *Widget) Raw() string { return RawForm(w.tex, w.display) }

func (w *Widget) inline() {}

// RawForm returns the delimited text form of an expression: $tex$ for
// inline, $$tex$$ for display.
func RawForm(tex string, display bool) string {
	if display {
		return "$$" + tex + "$$"
	}
	return "$" + tex + "$"
}

// DelimLen returns the delimiter length for a form: 2 for display, 1
// for inline.
func DelimLen(display bool) int {
	if display {
		return 2
	}
	return 1
}
