package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/engine/match"
)

// Re-export commonly used types for convenience.
type (
	// RevisionID identifies one state of the buffer's current content.
	RevisionID = buffer.RevisionID

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// Point represents a line/column position.
	Point = buffer.Point
)

// Change is one committed replacement.
type Change struct {
	Range       match.Range // Range in the text before the commit
	OldText     string      // Text that was replaced
	NewText     string      // Replacement text
	Revision    RevisionID  // Revision produced by the commit
	CommittedAt time.Time
}

// Engine is the facade over the text buffer used by the search controller.
// All operations are thread-safe.
type Engine struct {
	mu sync.Mutex

	buf        *buffer.Buffer
	changes    []Change
	maxChanges int
	readOnly   bool
}

// New creates an Engine whose original snapshot is text.
func New(text string, opts ...Option) *Engine {
	e := &Engine{
		buf:        buffer.New(text),
		maxChanges: DefaultMaxChanges,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Text returns the current content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Original returns the snapshot captured at construction.
func (e *Engine) Original() string {
	return e.buf.Original()
}

// Len returns the byte length of the current content.
func (e *Engine) Len() int {
	return e.buf.Len()
}

// RevisionID returns the current revision.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// Snapshot returns the current content and revision together.
func (e *Engine) Snapshot() buffer.Snapshot {
	return e.buf.Snapshot()
}

// OffsetToPoint converts a byte offset in the current content to line/column.
func (e *Engine) OffsetToPoint(offset int) Point {
	return e.buf.OffsetToPoint(offset)
}

// Modified reports whether the current content differs from the original.
func (e *Engine) Modified() bool {
	return e.buf.Modified()
}

// IsReadOnly returns true if commits are refused.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Find computes the match set of pattern against the current revision.
func (e *Engine) Find(pattern string) match.Set {
	snap := e.buf.Snapshot()
	return match.FindAt(snap.Text(), pattern, uint64(snap.RevisionID()))
}

// Commit replaces the single range of set with replacement.
//
// The set must hold exactly one range and must have been computed against
// the current revision. An empty replacement deletes the range.
func (e *Engine) Commit(set match.Set, replacement string) (EditResult, error) {
	if e.readOnly {
		return EditResult{}, ErrReadOnly
	}
	r, ok := set.Single()
	if !ok {
		return EditResult{}, ErrAmbiguousMatch
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.buf.Snapshot()
	if set.Revision() != uint64(snap.RevisionID()) {
		return EditResult{}, ErrStaleRange
	}
	if !r.Within(snap.Len()) {
		return EditResult{}, fmt.Errorf("commit %s: %w", r, ErrRangeInvalid)
	}

	res, err := e.buf.ReplaceAt(snap.RevisionID(), r.Start, r.End, replacement)
	if err != nil {
		if errors.Is(err, buffer.ErrStaleRevision) {
			return EditResult{}, ErrStaleRange
		}
		return EditResult{}, fmt.Errorf("commit %s: %w", r, err)
	}

	e.recordLocked(Change{
		Range:       r,
		OldText:     res.OldText,
		NewText:     replacement,
		Revision:    res.NewRevision,
		CommittedAt: time.Now(),
	})
	return res, nil
}

// Reset restores the original snapshot and clears the change log.
// Every match set computed before the reset becomes stale.
func (e *Engine) Reset() RevisionID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.changes = nil
	return e.buf.Reset()
}

// Changes returns the commits made since construction or the last reset,
// oldest first.
func (e *Engine) Changes() []Change {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Change, len(e.changes))
	copy(out, e.changes)
	return out
}

func (e *Engine) recordLocked(c Change) {
	e.changes = append(e.changes, c)
	if over := len(e.changes) - e.maxChanges; over > 0 {
		e.changes = append([]Change(nil), e.changes[over:]...)
	}
}
