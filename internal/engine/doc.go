// Package engine applies accepted matches to a text buffer.
//
// The Engine owns a buffer.Buffer and is the only path, besides Reset, that
// mutates its current content. It finds matches against the current
// revision and commits a replacement for a match set that holds exactly one
// range:
//
//	eng := engine.New("foo bar foo baz")
//	set := eng.Find("bar")             // {[4:7)}
//	res, err := eng.Commit(set, "qux") // "foo qux foo baz"
//
// Match sets carry the revision they were computed against. Commit rejects a
// set from any other revision with ErrStaleRange, so offsets are never
// applied across an intervening edit or reset. A rejected commit leaves the
// buffer untouched.
//
// Multi-range edits are not offered. If they are ever added they must be
// applied from the highest offset to the lowest on a private copy of the
// ranges; a Set is never reordered in place.
//
// The engine also records the commits made since the last reset and can
// summarise the difference between the original snapshot and the current
// content.
package engine
