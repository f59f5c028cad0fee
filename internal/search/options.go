package search

import (
	"time"

	"github.com/dshills/findstorm/internal/event"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/stream"
)

// Option configures a Controller.
type Option func(*Controller)

// WithBus publishes state changes on bus.
func WithBus(bus event.Bus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock that paces stream ticks.
func WithClock(clock stream.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithTickInterval sets the stream tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.interval = d
	}
}
