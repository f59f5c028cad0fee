package event

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, recovered any)

// ErrorHandler is called when a handler returns an error.
type ErrorHandler func(ev Event, err error)

type busConfig struct {
	queueSize    int
	panicHandler PanicHandler
	errorHandler ErrorHandler
}

func defaultBusConfig() busConfig {
	return busConfig{
		queueSize: 1024,
	}
}

// WithQueueSize sets the async event queue size.
func WithQueueSize(size int) BusOption {
	return func(c *busConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithPanicHandler sets the function told about recovered handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// WithErrorHandler sets the function told about handler errors.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(c *busConfig) {
		c.errorHandler = h
	}
}
