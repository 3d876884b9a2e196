package reconcile

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was
	// prevented from running.
	Stop() bool
}

// Clock schedules deferred callbacks. The scheduler never reads wall
// time directly, so tests can substitute a virtual clock and drive it
// deterministically.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// WallClock is the real clock. Callbacks fire on the runtime's timer
// goroutine; hosts that require loop affinity wrap the callback to
// repost it onto their event loop.
type WallClock struct{}

// NewWallClock creates the real clock.
func NewWallClock() WallClock { return WallClock{} }

// AfterFunc defers fn by d using the runtime timer.
func (WallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// VirtualClock is a manually driven clock for tests. Callbacks fire
// synchronously from Advance, in deadline order.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*virtualTimer
}

// NewVirtualClock creates a virtual clock starting at an arbitrary
// fixed instant.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{now: time.Unix(0, 0)}
}

// Now returns the clock's current instant.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to fire when the clock advances past d.
func (c *VirtualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &virtualTimer{clock: c, deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in deadline
// order.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	target := c.now

	var due []*virtualTimer
	var rest []*virtualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.deadline.After(target) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

type virtualTimer struct {
	clock    *VirtualClock
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *virtualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
