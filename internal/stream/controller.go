package stream

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/engine/buffer"
)

// State is the controller state.
type State uint8

const (
	StateIdle State = iota
	StateStreaming
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Source supplies the text each tick searches.
type Source interface {
	Snapshot() buffer.Snapshot
}

// Handler receives the Update produced by each tick.
type Handler func(Update)

// Controller runs at most one Session, one Step per tick.
// See the package documentation for its locking contract.
type Controller struct {
	source   Source
	clock    Clock
	locker   sync.Locker
	interval time.Duration
	handler  Handler

	session *Session
	ticks   uint64
}

// NewController creates an idle controller that searches source.
func NewController(source Source, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		clock:    RealClock(),
		locker:   &sync.Mutex{},
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin starts a session for pattern, cancelling any live one first. It
// returns the new session's ID, or false if pattern is empty.
func (c *Controller) Begin(pattern string) (uuid.UUID, bool) {
	c.Cancel()
	if pattern == "" {
		return uuid.Nil, false
	}

	s := NewSession(pattern)
	c.session = s
	c.schedule(s)
	return s.ID(), true
}

// Cancel stops the live session without finalising it. It returns false
// if the controller was idle.
func (c *Controller) Cancel() bool {
	s := c.session
	if s == nil {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	c.session = nil
	return true
}

// State returns StateStreaming while a session is live.
func (c *Controller) State() State {
	if c.session != nil {
		return StateStreaming
	}
	return StateIdle
}

// IsStreaming returns true while a session is live.
func (c *Controller) IsStreaming() bool {
	return c.session != nil
}

// Session returns the live session, or nil.
func (c *Controller) Session() *Session {
	return c.session
}

// Progress returns the live session's progress, or 0 when idle.
func (c *Controller) Progress() float64 {
	if c.session == nil {
		return 0
	}
	return c.session.Progress()
}

// Interval returns the tick interval used for new sessions.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// SetInterval changes the tick interval. The live session keeps ticking at
// the interval it was scheduled with until its next tick.
func (c *Controller) SetInterval(d time.Duration) {
	if d > 0 {
		c.interval = d
	}
}

// Ticks returns the number of ticks delivered since creation.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

func (c *Controller) schedule(s *Session) {
	s.timer = c.clock.AfterFunc(c.interval, func() {
		c.locker.Lock()
		defer c.locker.Unlock()
		c.tick(s)
	})
}

// tick runs with the locker held.
func (c *Controller) tick(s *Session) {
	// A timer that raced with Cancel or Begin belongs to a dead session.
	if c.session != s {
		return
	}
	s.timer = nil
	c.ticks++

	u := s.Step(c.source.Snapshot())
	if u.Done {
		c.session = nil
	} else {
		c.schedule(s)
	}

	if c.handler != nil {
		c.handler(u)
	}
}
