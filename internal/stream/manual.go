package stream

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a Clock whose time only moves when Advance is called.
// Scripts and tests use it to deliver ticks deterministically.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

// NewManualClock creates a manual clock starting at the Unix epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

// AfterFunc schedules f to run when the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{fireTime: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d, running due callbacks in time
// order on the caller's goroutine. Callbacks scheduled by a callback run in
// the same call if they fall due. The caller must not hold a lock the
// callbacks acquire.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		next := c.popDue(target)
		if next == nil {
			return
		}
		next.fire()
	}
}

func (c *ManualClock) popDue(target time.Time) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].fireTime.Before(c.timers[j].fireTime)
	})
	for i, t := range c.timers {
		if t.isStopped() {
			continue
		}
		if t.fireTime.After(target) {
			break
		}
		c.timers = append(c.timers[:i], c.timers[i+1:]...)
		c.now = t.fireTime
		return t
	}
	c.now = target
	return nil
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

// FireStopped runs the callbacks of stopped timers, as if each had been
// dequeued by the runtime just before Stop was called.
func (c *ManualClock) FireStopped() {
	c.mu.Lock()
	var late []*manualTimer
	kept := c.timers[:0]
	for _, t := range c.timers {
		if t.isStopped() {
			late = append(late, t)
		} else {
			kept = append(kept, t)
		}
	}
	c.timers = kept
	c.mu.Unlock()

	for _, t := range late {
		t.f()
	}
}

type manualTimer struct {
	mu       sync.Mutex
	fireTime time.Time
	f        func()
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (t *manualTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *manualTimer) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	f := t.f
	t.mu.Unlock()
	if f != nil {
		f()
	}
}
