package match

import "strings"

// Find returns every non-overlapping occurrence of pattern in text, left to
// right. An empty pattern yields an empty set.
func Find(text, pattern string) Set {
	return FindAt(text, pattern, 0)
}

// FindAt is like Find but stamps the result with the revision of the text
// it was computed against.
func FindAt(text, pattern string, revision uint64) Set {
	set := Set{revision: revision}
	if pattern == "" || len(pattern) > len(text) {
		return set
	}

	cursor := 0
	for cursor <= len(text)-len(pattern) {
		idx := strings.Index(text[cursor:], pattern)
		if idx < 0 {
			break
		}
		start := cursor + idx
		end := start + len(pattern)
		set.ranges = append(set.ranges, Range{Start: start, End: end})
		// Resume at the end of the hit, never inside it.
		cursor = end
	}
	return set
}

// Count returns the number of non-overlapping occurrences of pattern in
// text without materialising the ranges.
func Count(text, pattern string) int {
	if pattern == "" {
		return 0
	}
	return strings.Count(text, pattern)
}
