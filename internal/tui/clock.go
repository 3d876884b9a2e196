package tui

import (
	"time"

	"github.com/dshills/mathdown/internal/reconcile"
)

// loopClock wraps a clock so timer callbacks are posted onto the event
// loop instead of firing on the runtime timer goroutine. Session state
// is then only ever touched from one goroutine.
type loopClock struct {
	inner reconcile.Clock
	post  func(func())
}

func (c loopClock) AfterFunc(d time.Duration, fn func()) reconcile.Timer {
	return c.inner.AfterFunc(d, func() { c.post(fn) })
}
