// Package highlight turns match ranges into styled text segments.
//
// Build splits a text into alternating plain and highlighted spans. Spans
// cover the text exactly once, in order. Ranges that overlap a previous
// range or fall outside the text are clamped or dropped, so a stale set can
// never cause an out-of-bounds slice.
package highlight
