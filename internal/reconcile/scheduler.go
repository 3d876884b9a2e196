// Package reconcile decides when scanning and conversion may safely
// run.
//
// The scheduler owns two independently debounced timers: one for
// reconciliation passes and one for persistence saves. Re-arming a
// timer is the cancellation mechanism; a superseded pass never
// executes. Exhaustive passes bypass the debounce entirely and run
// synchronously.
package reconcile

import (
	"sync"
	"time"
)

// Mode selects how aggressively a reconciliation pass converts.
type Mode uint8

const (
	// Interactive skips the text segment holding the caret, so
	// mid-typing inside an unfinished run is never converted early.
	Interactive Mode = iota
	// Exhaustive converts every eligible match, skipping nothing.
	Exhaustive
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Interactive:
		return "interactive"
	case Exhaustive:
		return "exhaustive"
	default:
		return "unknown"
	}
}

// Config holds the scheduler's debounce intervals.
type Config struct {
	// ReconcileDelay is the quiet period before an interactive pass.
	ReconcileDelay time.Duration

	// PersistDelay is the quiet period before a persistence save.
	PersistDelay time.Duration
}

// DefaultConfig returns the standard debounce intervals.
func DefaultConfig() Config {
	return Config{
		ReconcileDelay: 300 * time.Millisecond,
		PersistDelay:   800 * time.Millisecond,
	}
}

// Scheduler coordinates reconciliation passes and persistence saves.
type Scheduler struct {
	mu sync.Mutex

	clock Clock
	cfg   Config

	pass    func(Mode)
	persist func()

	reconcileTimer Timer
	reconcileGen   uint64
	pendingMode    Mode

	persistTimer Timer
	persistGen   uint64
}

// New creates a scheduler. pass runs a reconciliation pass in the given
// mode; persist writes the document to the store. Both are invoked from
// timer callbacks or synchronously from RunNow.
func New(clock Clock, cfg Config, pass func(Mode), persist func()) *Scheduler {
	if cfg.ReconcileDelay <= 0 {
		cfg.ReconcileDelay = DefaultConfig().ReconcileDelay
	}
	if cfg.PersistDelay <= 0 {
		cfg.PersistDelay = DefaultConfig().PersistDelay
	}
	return &Scheduler{clock: clock, cfg: cfg, pass: pass, persist: persist}
}

// ScheduleReconcile requests a pass after the quiet period, re-arming
// any pending request. An Exhaustive mode runs immediately instead.
func (s *Scheduler) ScheduleReconcile(mode Mode) {
	if mode == Exhaustive {
		s.RunNow(Exhaustive)
		return
	}

	s.mu.Lock()
	if s.reconcileTimer != nil {
		s.reconcileTimer.Stop()
	}
	s.reconcileGen++
	gen := s.reconcileGen
	s.pendingMode = mode
	s.reconcileTimer = s.clock.AfterFunc(s.cfg.ReconcileDelay, func() {
		s.fireReconcile(gen)
	})
	s.mu.Unlock()
}

// RunNow cancels any pending pass and runs one synchronously.
func (s *Scheduler) RunNow(mode Mode) {
	s.mu.Lock()
	s.reconcileGen++ // invalidate any in-flight callback
	if s.reconcileTimer != nil {
		s.reconcileTimer.Stop()
		s.reconcileTimer = nil
	}
	s.mu.Unlock()
	s.pass(mode)
}

// SchedulePersist requests a save after the quiet period, re-arming any
// pending request.
func (s *Scheduler) SchedulePersist() {
	s.mu.Lock()
	if s.persistTimer != nil {
		s.persistTimer.Stop()
	}
	s.persistGen++
	gen := s.persistGen
	s.persistTimer = s.clock.AfterFunc(s.cfg.PersistDelay, func() {
		s.firePersist(gen)
	})
	s.mu.Unlock()
}

// Stop cancels all pending work. Nothing fires after Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileGen++
	s.persistGen++
	if s.reconcileTimer != nil {
		s.reconcileTimer.Stop()
		s.reconcileTimer = nil
	}
	if s.persistTimer != nil {
		s.persistTimer.Stop()
		s.persistTimer = nil
	}
}

func (s *Scheduler) fireReconcile(gen uint64) {
	s.mu.Lock()
	if gen != s.reconcileGen {
		s.mu.Unlock()
		return
	}
	s.reconcileTimer = nil
	mode := s.pendingMode
	s.mu.Unlock()
	s.pass(mode)
}

func (s *Scheduler) firePersist(gen uint64) {
	s.mu.Lock()
	if gen != s.persistGen {
		s.mu.Unlock()
		return
	}
	s.persistTimer = nil
	s.mu.Unlock()
	s.persist()
}
