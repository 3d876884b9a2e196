// Package tui hosts the editor session on a terminal screen.
//
// The app owns the tcell event loop. Scheduler timers are rerouted
// through loopClock so every session call happens on the loop
// goroutine.
package tui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/tliron/commonlog"

	"github.com/dshills/mathdown/internal/config"
	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/input/key"
	"github.com/dshills/mathdown/internal/navigate"
	"github.com/dshills/mathdown/internal/reconcile"
	"github.com/dshills/mathdown/internal/render"
	"github.com/dshills/mathdown/internal/session"
	"github.com/dshills/mathdown/internal/store"
)

var log = commonlog.GetLogger("mathdown.tui")

// Options configures the app.
type Options struct {
	Config config.Config
	Store  store.Store

	// ConfigPath, when set, is watched for changes; display settings
	// reload live.
	ConfigPath string

	// ExportPath receives the markdown on the export shortcut. Empty
	// disables the shortcut.
	ExportPath string

	// ImportPath, when set, replaces the document at startup.
	ImportPath string
}

// App drives the terminal surface: it owns the screen, the session,
// and the event loop.
type App struct {
	screen tcell.Screen
	sess   *session.Session
	ed     *Editor
	caret  *doctree.Caret
	cfg    config.Config

	configPath string
	exportPath string

	posted chan func()
	lines  []line
	scroll int

	prompt *mathPrompt
	status string
}

// mathPrompt is the two-step insert-math prompt: first the expression
// text, then a block-vs-inline confirmation.
type mathPrompt struct {
	buf     []rune
	expr    string
	confirm bool
}

// New builds the app and its session.
func New(opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}

	a := &App{
		screen:     screen,
		caret:      doctree.NewCaret(),
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		exportPath: opts.ExportPath,
		posted:     make(chan func(), 64),
	}
	a.ed = NewEditor(a.caret)

	sess, err := session.New(session.Options{
		Config:    opts.Config,
		Engine:    render.NewTextEngine(),
		Store:     opts.Store,
		Selection: a.caret,
		Host:      a.ed,
		Clock:     loopClock{inner: reconcile.NewWallClock(), post: a.post},
	})
	if err != nil {
		return nil, err
	}
	a.sess = sess
	a.ed.Bind(sess)

	if opts.ImportPath != "" {
		f, err := os.Open(opts.ImportPath)
		if err != nil {
			return nil, fmt.Errorf("open import: %w", err)
		}
		defer f.Close()
		if err := sess.ImportFile(opts.ImportPath, f); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) post(fn func()) {
	select {
	case a.posted <- fn:
	default:
		// A full queue means the loop is gone or wedged; dropping a
		// debounced callback is safe, the next edit re-arms it.
	}
}

// Run initializes the screen and processes events until quit. The
// session is flushed on the way out.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen.EnableMouse()
	a.screen.EnableFocus()
	defer a.screen.Fini()

	if a.configPath != "" {
		w, err := config.NewWatcher(a.configPath, func(cfg config.Config) {
			// Scheduler intervals are fixed for the session; display
			// settings take effect on the next draw.
			a.post(func() {
				a.cfg.Preview = cfg.Preview
				a.cfg.Logging = cfg.Logging
				a.status = "configuration reloaded"
			})
		})
		if err != nil {
			log.Errorf("watch config: %v", err)
		} else {
			defer w.Close()
		}
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)

	a.draw()
	for {
		select {
		case fn := <-a.posted:
			fn()
			a.draw()
		case ev, ok := <-events:
			if !ok {
				return a.sess.Close()
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
			case *tcell.EventFocus:
				if !ev.Focused {
					a.sess.HandleFocusLost()
				}
			case *tcell.EventKey:
				if a.handleKey(ev) {
					close(quit)
					return a.sess.Close()
				}
			case *tcell.EventMouse:
				a.handleMouse(ev)
			}
			a.draw()
		}
	}
}

// handleKey reports true on quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.prompt != nil {
		a.handlePromptKey(ev)
		return false
	}

	switch {
	case ev.Key() == tcell.KeyCtrlQ:
		return true
	case ev.Key() == tcell.KeyCtrlE:
		a.export()
		return false
	case ev.Key() == tcell.KeyCtrlB:
		a.exec(session.Command{Name: session.CmdBold})
		return false
	case ev.Key() == tcell.KeyCtrlT:
		a.exec(session.Command{Name: session.CmdItalic})
		return false
	case ev.Key() == tcell.KeyCtrlH && ev.Modifiers()&tcell.ModCtrl != 0:
		// Ctrl+H doubles as backspace on many terminals; only treat it
		// as the heading command when the modifier survived.
		a.exec(session.Command{Name: session.CmdHeading, Level: 1})
		return false
	case ev.Key() == tcell.KeyCtrlD:
		a.prompt = &mathPrompt{}
		return false
	}

	kev, ok := translateKey(ev)
	if !ok {
		return false
	}
	if a.sess.HandleKey(kev) {
		return false
	}
	a.defaultKey(kev)
	return false
}

// defaultKey is what happens when the session declines the event.
func (a *App) defaultKey(kev key.Event) {
	switch kev.Key {
	case key.KeyRune:
		if err := a.ed.InsertText(string(kev.Rune)); err == nil {
			a.sess.HandleInput()
		}
	case key.KeyBackspace:
		if a.ed.DeleteRune(navigate.Backward) {
			a.sess.HandleInput()
		}
	case key.KeyDelete:
		if a.ed.DeleteRune(navigate.Forward) {
			a.sess.HandleInput()
		}
	case key.KeyLeft:
		a.ed.MoveCaret(navigate.Backward)
		a.sess.HandleSelectionChange()
	case key.KeyRight:
		a.ed.MoveCaret(navigate.Forward)
		a.sess.HandleSelectionChange()
	case key.KeyUp, key.KeyDown:
		a.moveVertical(kev.Key)
		a.sess.HandleSelectionChange()
	case key.KeyEnter:
		if a.ed.SplitBlock() {
			a.sess.HandleInput()
		}
	}
}

func (a *App) handlePromptKey(ev *tcell.EventKey) {
	p := a.prompt
	if p.confirm {
		switch ev.Key() {
		case tcell.KeyEscape:
			a.prompt = nil
		case tcell.KeyEnter:
			a.finishPrompt(false)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'y', 'Y':
				a.finishPrompt(true)
			case 'n', 'N':
				a.finishPrompt(false)
			}
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.prompt = nil
	case tcell.KeyEnter:
		p.expr = string(p.buf)
		p.confirm = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
	case tcell.KeyRune:
		p.buf = append(p.buf, ev.Rune())
	}
}

// finishPrompt closes the prompt and inserts the collected expression.
func (a *App) finishPrompt(display bool) {
	expr := a.prompt.expr
	a.prompt = nil
	if err := a.sess.InsertMath(session.MathRequest{Expression: expr, Display: display}); err != nil {
		a.status = err.Error()
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	i := a.scroll + y
	if i < 0 || i >= len(a.lines) {
		return
	}
	ln := a.lines[i]
	if w, frac, ok := widgetAt(ln, x); ok {
		a.sess.HandleClick(w, frac)
		return
	}
	if p, ok := textPointAt(ln, x); ok {
		a.caret.SetCollapsed(p)
		a.sess.HandleSelectionChange()
	}
}

// moveVertical moves the caret a line up or down, keeping the column.
func (a *App) moveVertical(k key.Key) {
	li, x := caretPosition(a.lines, a.caret)
	if li < 0 {
		return
	}
	if k == key.KeyUp {
		li--
	} else {
		li++
	}
	if li < 0 || li >= len(a.lines) {
		return
	}
	if p, ok := textPointAt(a.lines[li], x); ok {
		a.caret.SetCollapsed(p)
	}
}

func (a *App) exec(cmd session.Command) {
	if err := a.sess.ExecCommand(cmd); err != nil {
		a.status = err.Error()
	}
}

func (a *App) export() {
	if a.exportPath == "" {
		a.status = "no export path configured"
		return
	}
	markup := a.sess.ExportMarkup()
	if err := os.WriteFile(a.exportPath, []byte(markup+"\n"), 0o644); err != nil {
		a.status = err.Error()
		log.Errorf("export: %v", err)
		return
	}
	a.status = "exported to " + a.exportPath
}

// translateKey converts a tcell key event into the session's model.
func translateKey(ev *tcell.EventKey) (key.Event, bool) {
	var mods key.Modifier
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods |= key.ModShift
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyRune:
		return key.Event{Key: key.KeyRune, Rune: ev.Rune(), Modifiers: mods}, true
	}
	return key.Event{}, false
}
