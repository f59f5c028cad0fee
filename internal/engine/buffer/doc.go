// Package buffer provides the text buffer the search engine edits.
//
// A Buffer holds two strings: the original snapshot captured at
// construction, which never changes, and the current content, which changes
// only through Replace or Reset. Every change to the current content moves
// the buffer to a new RevisionID, so callers holding offsets computed
// against an older revision can detect that they are stale.
//
// Basic usage:
//
//	buf := buffer.New("foo bar foo baz")
//
//	// Splice a range
//	buf.Replace(4, 7, "qux") // "foo qux foo baz"
//
//	// Back to the snapshot
//	buf.Reset()              // "foo bar foo baz"
//
// Offsets are byte offsets into the current content. Replace preserves every
// byte outside the replaced range and inserts the replacement verbatim; no
// line-ending or encoding normalization is applied.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Use Snapshot to read text and revision
// together without an intervening write.
package buffer
