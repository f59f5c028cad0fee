package stream

import (
	"sync"
	"time"
)

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 120 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used to schedule ticks.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithInterval sets the fixed tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLocker sets the lock shared with the owner. Ticks acquire it before
// touching the session.
func WithLocker(l sync.Locker) Option {
	return func(c *Controller) {
		if l != nil {
			c.locker = l
		}
	}
}

// WithHandler sets the function called with every Update. It runs with
// the Locker held.
func WithHandler(h Handler) Option {
	return func(c *Controller) {
		c.handler = h
	}
}
