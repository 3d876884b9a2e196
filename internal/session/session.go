package session

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dshills/mathdown/internal/config"
	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/markdown"
	"github.com/dshills/mathdown/internal/navigate"
	"github.com/dshills/mathdown/internal/preview"
	"github.com/dshills/mathdown/internal/reconcile"
	"github.com/dshills/mathdown/internal/render"
	"github.com/dshills/mathdown/internal/store"
	"github.com/dshills/mathdown/internal/widget"
)

var log = commonlog.GetLogger("mathdown.session")

// Host is the editing surface the session delegates generic editing
// to: plain-text insertion, formatting commands, and focus control.
// The session owns math semantics; everything else stays the host's.
type Host interface {
	// ExecCommand applies a generic formatting command.
	ExecCommand(cmd Command) error

	// InsertText inserts plain text at the caret.
	InsertText(text string) error

	// Focus returns keyboard focus to the editing surface.
	Focus()
}

// ActiveEdit marks the single text segment currently holding an
// expanded (collapsed-to-raw) math run. At most one exists at a time.
type ActiveEdit struct {
	Segment *doctree.Text
}

// Options carries the session's collaborators. Engine, Store,
// Selection, and Host are required; a nil Clock means wall time.
type Options struct {
	Config    config.Config
	Engine    render.Engine
	Store     store.Store
	Selection doctree.Selection
	Host      Host
	Clock     reconcile.Clock
}

// Session is the live editing state for one document: the tree, the
// active edit, the scheduler, and the preview panel. All methods must
// be called from the host's event loop.
type Session struct {
	cfg     config.Config
	doc     *doctree.Document
	sel     doctree.Selection
	host    Host
	store   store.Store
	widgets *widget.Manager
	sched   *reconcile.Scheduler
	preview *preview.Panel
	active  *ActiveEdit
}

// New creates a session and loads the configured document from the
// store. A missing document starts empty.
func New(opts Options) (*Session, error) {
	if opts.Engine == nil {
		return nil, ErrNoEngine
	}
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	if opts.Selection == nil {
		return nil, ErrNoSelection
	}
	if opts.Host == nil {
		return nil, ErrNoHost
	}
	clock := opts.Clock
	if clock == nil {
		clock = reconcile.NewWallClock()
	}

	s := &Session{
		cfg:     opts.Config,
		sel:     opts.Selection,
		host:    opts.Host,
		store:   opts.Store,
		widgets: widget.NewManager(opts.Engine),
		preview: preview.NewPanel(opts.Engine),
	}
	s.sched = reconcile.New(clock, reconcile.Config{
		ReconcileDelay: s.cfg.ReconcileDelay(),
		PersistDelay:   s.cfg.PersistDelay(),
	}, s.runPass, s.persistNow)

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Document returns the session's document tree.
func (s *Session) Document() *doctree.Document { return s.doc }

// Selection returns the selection surface the session reads.
func (s *Session) Selection() doctree.Selection { return s.sel }

// Preview returns the floating preview panel state.
func (s *Session) Preview() *preview.Panel { return s.preview }

// Active returns the current active edit, or nil.
func (s *Session) Active() *ActiveEdit { return s.active }

// Close cancels pending timers and writes the document out.
func (s *Session) Close() error {
	s.sched.Stop()
	return s.persist()
}

func (s *Session) load() error {
	key := s.cfg.Document.Key
	markup, ok, err := s.store.Load(key)
	if err != nil {
		return fmt.Errorf("load document %q: %w", key, err)
	}
	if !ok {
		doc := doctree.NewDocument()
		doc.Append(doctree.NewBlock(doctree.BlockParagraph))
		s.doc = doc
		return nil
	}
	doc, err := markdown.Import(markup, s.widgets)
	if err != nil {
		return fmt.Errorf("import document %q: %w", key, err)
	}
	s.doc = doc
	log.Debugf("loaded %q: %d block(s)", key, doc.Len())
	return nil
}

// runPass scans eligible text segments and converts completed math
// runs. Interactive passes skip the segment holding the caret so an
// unfinished run is never converted mid-typing.
func (s *Session) runPass(mode reconcile.Mode) {
	var skip *doctree.Text
	if mode == reconcile.Interactive {
		if p, ok := navigate.CollapsedRange(s.sel, s.doc); ok {
			if t, ok := p.Container.(*doctree.Text); ok {
				skip = t
			}
		}
	}

	converted := 0
	for _, b := range s.doc.Blocks() {
		// Conversion mutates the child list; walk a snapshot.
		children := make([]doctree.Inline, len(b.Children()))
		copy(children, b.Children())
		for _, c := range children {
			t, ok := c.(*doctree.Text)
			if !ok || t == skip {
				continue
			}
			converted += s.widgets.ConvertText(t)
		}
	}

	if s.active != nil && !doctree.Attached(s.doc, s.active.Segment) {
		s.active = nil
	}
	if converted > 0 {
		log.Debugf("%s pass converted %d run(s)", mode, converted)
	}
	s.sched.SchedulePersist()
	s.refreshPreview()
}

func (s *Session) persist() error {
	return s.store.Save(s.cfg.Document.Key, markdown.Export(s.doc))
}

func (s *Session) persistNow() {
	if err := s.persist(); err != nil {
		log.Errorf("save document %q: %v", s.cfg.Document.Key, err)
	}
}

func (s *Session) refreshPreview() {
	if !s.cfg.Preview.Enabled {
		s.preview.Hide()
		return
	}
	p, ok := navigate.CollapsedRange(s.sel, s.doc)
	if !ok {
		s.preview.Hide()
		return
	}
	t, ok := p.Container.(*doctree.Text)
	if !ok {
		s.preview.Hide()
		return
	}
	s.preview.Update(t, p.Offset)
}
