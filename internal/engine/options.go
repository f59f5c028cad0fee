package engine

// Default configuration values.
const (
	DefaultMaxChanges = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxChanges sets the maximum number of commits kept in the change log.
// Older entries are dropped first.
func WithMaxChanges(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxChanges = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Commit returns ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
