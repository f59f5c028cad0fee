// Package match finds exact-substring occurrences of a pattern in text.
//
// The result of a search is a Set: an ordered, non-overlapping sequence of
// half-open byte ranges. A Set is immutable once produced. Accessors hand
// out copies so that no consumer can reorder or edit the ranges another
// consumer is reading.
//
// Basic usage:
//
//	set := match.Find("foo bar foo", "foo")
//	set.Len()      // 2
//	set.At(0)      // [0:3)
//	set.At(1)      // [8:11)
//
// Matching is case-sensitive and byte based. An empty pattern never
// matches. After each hit the scan resumes at the end of the hit, so
// patterns that could tile ("aa" in "aaaa") yield adjacent, never
// overlapping, ranges.
package match
