package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid     = errors.New("buffer: invalid range")
	ErrStaleRevision    = errors.New("buffer: stale revision")
)

// Buffer holds an immutable original snapshot and the mutable current
// content derived from it. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	original   string
	current    string
	revisionID RevisionID
}

// New creates a buffer whose original snapshot and current content are text.
func New(text string) *Buffer {
	return &Buffer{
		original:   text,
		current:    text,
		revisionID: NewRevisionID(),
	}
}

// Read Operations

// Text returns the current content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Original returns the snapshot captured at construction.
func (b *Buffer) Original() string {
	// original is never written after New.
	return b.original
}

// TextRange returns the current text in [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start < 0 || start > end || end > len(b.current) {
		return "", ErrRangeInvalid
	}
	return b.current[start:end], nil
}

// Len returns the byte length of the current content.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.current)
}

// Modified reports whether the current content differs from the original.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current != b.original
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Snapshot returns the current content and revision as one consistent view.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{text: b.current, revisionID: b.revisionID}
}

// OffsetToPoint converts a byte offset in the current content to
// line/column. Offsets past the end clamp to the end.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return offsetToPoint(b.current, offset)
}

// Write Operations

// Replace replaces [start, end) of the current content with text.
// Bytes outside the range are preserved exactly.
func (b *Buffer) Replace(start, end ByteOffset, text string) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replaceLocked(NewEdit(start, end, text))
}

// ReplaceAt is like Replace but fails with ErrStaleRevision unless the
// buffer is still at the given revision.
func (b *Buffer) ReplaceAt(rev RevisionID, start, end ByteOffset, text string) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if rev != b.revisionID {
		return EditResult{}, ErrStaleRevision
	}
	return b.replaceLocked(NewEdit(start, end, text))
}

func (b *Buffer) replaceLocked(edit Edit) (EditResult, error) {
	if edit.Start < 0 || edit.Start > edit.End || edit.End > len(b.current) {
		return EditResult{}, ErrRangeInvalid
	}

	old := b.current[edit.Start:edit.End]

	var sb strings.Builder
	sb.Grow(len(b.current) + edit.Delta())
	sb.WriteString(b.current[:edit.Start])
	sb.WriteString(edit.NewText)
	sb.WriteString(b.current[edit.End:])

	oldRev := b.revisionID
	b.current = sb.String()
	b.revisionID = NewRevisionID()

	return EditResult{
		Edit:        edit,
		OldText:     old,
		NewEnd:      edit.Start + len(edit.NewText),
		OldRevision: oldRev,
		NewRevision: b.revisionID,
	}, nil
}

// Reset restores the current content to the original snapshot. The
// revision always advances, so offsets computed before the reset are stale
// even when the content did not change.
func (b *Buffer) Reset() RevisionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = b.original
	b.revisionID = NewRevisionID()
	return b.revisionID
}

// offsetToPoint converts a byte offset in text to line/column.
func offsetToPoint(text string, offset ByteOffset) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n")
	col := offset
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		col = offset - i - 1
	}
	return Point{Line: line, Column: col}
}
