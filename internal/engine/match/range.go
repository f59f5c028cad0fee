package match

import "fmt"

// Range is a half-open byte interval [Start, End) in a text.
type Range struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Within reports whether the range is a non-empty interval inside a text
// of the given length.
func (r Range) Within(textLen int) bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= textLen
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}
