package highlight

import (
	"strings"

	"github.com/dshills/findstorm/internal/engine/match"
)

// Kind classifies a segment.
type Kind uint8

const (
	KindPlain Kind = iota
	KindMatch      // Completed search result
	KindLive       // Unique match of a partially revealed pattern
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindMatch:
		return "match"
	case KindLive:
		return "live"
	default:
		return "unknown"
	}
}

// Segment is a span of text with one kind.
type Segment struct {
	Text  string
	Start int // Byte offset of Text in the source
	Kind  Kind
}

// End returns the byte offset just past the segment.
func (s Segment) End() int {
	return s.Start + len(s.Text)
}

// Highlighted returns true for non-plain segments.
func (s Segment) Highlighted() bool {
	return s.Kind != KindPlain
}

// Build splits text into segments, marking every range of set as kind.
// Empty text yields no segments.
func Build(text string, set match.Set, kind Kind) []Segment {
	if text == "" {
		return nil
	}

	segs := make([]Segment, 0, 2*set.Len()+1)
	pos := 0
	for _, r := range set.Ranges() {
		start := max(r.Start, pos)
		end := min(r.End, len(text))
		if start >= end {
			continue
		}
		if start > pos {
			segs = append(segs, Segment{Text: text[pos:start], Start: pos, Kind: KindPlain})
		}
		segs = append(segs, Segment{Text: text[start:end], Start: start, Kind: kind})
		pos = end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:], Start: pos, Kind: KindPlain})
	}
	return segs
}

// Lines splits segments at newlines. The newline bytes are dropped; a
// segment spanning several lines is split into one segment per line.
// The result always has one entry per line of the source text.
func Lines(segs []Segment) [][]Segment {
	lines := [][]Segment{nil}
	for _, seg := range segs {
		text, start := seg.Text, seg.Start
		for {
			i := strings.IndexByte(text, '\n')
			if i < 0 {
				break
			}
			if i > 0 {
				last := len(lines) - 1
				lines[last] = append(lines[last], Segment{Text: text[:i], Start: start, Kind: seg.Kind})
			}
			lines = append(lines, nil)
			text, start = text[i+1:], start+i+1
		}
		if text != "" {
			last := len(lines) - 1
			lines[last] = append(lines[last], Segment{Text: text, Start: start, Kind: seg.Kind})
		}
	}
	return lines
}
