package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrStaleRange indicates a match set computed against an older revision
	// of the buffer. It must be recomputed before it can be applied.
	ErrStaleRange = errors.New("engine: match set is stale")

	// ErrRangeInvalid indicates a range outside the current buffer.
	ErrRangeInvalid = errors.New("engine: invalid range")

	// ErrAmbiguousMatch indicates a commit was requested for a match set
	// that does not hold exactly one range.
	ErrAmbiguousMatch = errors.New("engine: match set does not hold exactly one range")

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine: engine is read-only")
)
