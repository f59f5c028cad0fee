package match

import "strings"

// Set is an ordered, non-overlapping collection of ranges produced by one
// search. The zero value is an empty set.
type Set struct {
	ranges   []Range
	revision uint64
}

// Empty returns an empty set stamped with the given revision.
func Empty(revision uint64) Set {
	return Set{revision: revision}
}

// Len returns the number of ranges.
func (s Set) Len() int {
	return len(s.ranges)
}

// IsEmpty returns true if the set has no ranges.
func (s Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// At returns the i-th range. It panics if i is out of bounds.
func (s Set) At(i int) Range {
	return s.ranges[i]
}

// Ranges returns a copy of the ranges in ascending order.
func (s Set) Ranges() []Range {
	if len(s.ranges) == 0 {
		return nil
	}
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Single returns the only range of the set. ok is false unless the set
// holds exactly one range.
func (s Set) Single() (r Range, ok bool) {
	if len(s.ranges) != 1 {
		return Range{}, false
	}
	return s.ranges[0], true
}

// Revision returns the text revision the set was computed against.
// Zero means the set was computed without a revision.
func (s Set) Revision() uint64 {
	return s.revision
}

// Equal reports whether two sets hold the same ranges. Revisions are not
// compared.
func (s Set) Equal(other Set) bool {
	if len(s.ranges) != len(other.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

// Valid reports whether the set satisfies its invariants against a text of
// the given length: every range is non-empty and in bounds, and ranges are
// strictly ascending without overlap.
func (s Set) Valid(textLen int) bool {
	for i, r := range s.ranges {
		if !r.Within(textLen) {
			return false
		}
		if i > 0 && s.ranges[i-1].End > r.Start {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the set.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, r := range s.ranges {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
