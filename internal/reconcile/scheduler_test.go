package reconcile

import (
	"testing"
	"time"
)

func TestDebounceCoalesces(t *testing.T) {
	clock := NewVirtualClock()
	var passes []Mode
	s := New(clock, DefaultConfig(), func(m Mode) { passes = append(passes, m) }, func() {})

	// Three rapid input events: only the last scheduled pass runs.
	s.ScheduleReconcile(Interactive)
	clock.Advance(100 * time.Millisecond)
	s.ScheduleReconcile(Interactive)
	clock.Advance(100 * time.Millisecond)
	s.ScheduleReconcile(Interactive)

	if len(passes) != 0 {
		t.Fatalf("pass ran before quiet period: %v", passes)
	}

	clock.Advance(300 * time.Millisecond)
	if len(passes) != 1 || passes[0] != Interactive {
		t.Fatalf("passes = %v, want one interactive", passes)
	}

	// Nothing else pending.
	clock.Advance(time.Hour)
	if len(passes) != 1 {
		t.Fatalf("superseded pass executed: %v", passes)
	}
}

func TestRearmResetsDeadline(t *testing.T) {
	clock := NewVirtualClock()
	var n int
	s := New(clock, Config{ReconcileDelay: 200 * time.Millisecond}, func(Mode) { n++ }, func() {})

	s.ScheduleReconcile(Interactive)
	clock.Advance(150 * time.Millisecond)
	s.ScheduleReconcile(Interactive) // re-arm at t=150
	clock.Advance(150 * time.Millisecond)
	if n != 0 {
		t.Fatal("pass ran 150ms after re-arm; deadline was not reset")
	}
	clock.Advance(50 * time.Millisecond)
	if n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}
}

func TestExhaustiveRunsImmediately(t *testing.T) {
	clock := NewVirtualClock()
	var passes []Mode
	s := New(clock, DefaultConfig(), func(m Mode) { passes = append(passes, m) }, func() {})

	s.ScheduleReconcile(Interactive)
	s.ScheduleReconcile(Exhaustive)

	if len(passes) != 1 || passes[0] != Exhaustive {
		t.Fatalf("passes = %v, want immediate exhaustive", passes)
	}

	// The pending interactive pass was superseded.
	clock.Advance(time.Hour)
	if len(passes) != 1 {
		t.Fatalf("superseded interactive pass executed: %v", passes)
	}
}

func TestPersistIndependentTimer(t *testing.T) {
	clock := NewVirtualClock()
	var passes, saves int
	s := New(clock, Config{
		ReconcileDelay: 100 * time.Millisecond,
		PersistDelay:   500 * time.Millisecond,
	}, func(Mode) { passes++ }, func() { saves++ })

	s.ScheduleReconcile(Interactive)
	s.SchedulePersist()

	clock.Advance(100 * time.Millisecond)
	if passes != 1 || saves != 0 {
		t.Fatalf("passes=%d saves=%d after 100ms", passes, saves)
	}
	clock.Advance(400 * time.Millisecond)
	if passes != 1 || saves != 1 {
		t.Fatalf("passes=%d saves=%d after 500ms", passes, saves)
	}
}

func TestPersistRearm(t *testing.T) {
	clock := NewVirtualClock()
	var saves int
	s := New(clock, Config{PersistDelay: 300 * time.Millisecond}, func(Mode) {}, func() { saves++ })

	for i := 0; i < 5; i++ {
		s.SchedulePersist()
		clock.Advance(100 * time.Millisecond)
	}
	if saves != 0 {
		t.Fatalf("saves = %d before quiet period", saves)
	}
	clock.Advance(200 * time.Millisecond)
	if saves != 1 {
		t.Fatalf("saves = %d, want exactly 1", saves)
	}
}

func TestStopCancelsPending(t *testing.T) {
	clock := NewVirtualClock()
	var n int
	s := New(clock, DefaultConfig(), func(Mode) { n++ }, func() { n++ })

	s.ScheduleReconcile(Interactive)
	s.SchedulePersist()
	s.Stop()
	clock.Advance(time.Hour)
	if n != 0 {
		t.Fatalf("work fired after Stop: %d", n)
	}
}

func TestModeString(t *testing.T) {
	if Interactive.String() != "interactive" || Exhaustive.String() != "exhaustive" {
		t.Error("mode names wrong")
	}
}
