package engine

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffType indicates the type of a diff hunk.
type DiffType uint8

const (
	// DiffEqual indicates unchanged text.
	DiffEqual DiffType = iota

	// DiffInsert indicates text present only in the current content.
	DiffInsert

	// DiffDelete indicates text present only in the original snapshot.
	DiffDelete
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hunk is one run of equal, inserted or deleted text.
type Hunk struct {
	Type DiffType
	Text string
}

// DiffSummary describes how the current content differs from the original.
type DiffSummary struct {
	Hunks    []Hunk
	Inserted int // Bytes present only in the current content
	Deleted  int // Bytes present only in the original
	Distance int // Levenshtein distance in runes
}

// IsEmpty returns true if the contents are identical.
func (d DiffSummary) IsEmpty() bool {
	return d.Inserted == 0 && d.Deleted == 0
}

// String returns a short "+N -M" summary.
func (d DiffSummary) String() string {
	return fmt.Sprintf("+%d -%d", d.Inserted, d.Deleted)
}

// Diff compares the original snapshot with the current content.
func (e *Engine) Diff() DiffSummary {
	original, current := e.buf.Original(), e.buf.Text()
	if original == current {
		if original == "" {
			return DiffSummary{}
		}
		return DiffSummary{Hunks: []Hunk{{Type: DiffEqual, Text: original}}}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	summary := DiffSummary{
		Hunks:    make([]Hunk, 0, len(diffs)),
		Distance: dmp.DiffLevenshtein(diffs),
	}
	for _, d := range diffs {
		h := Hunk{Text: d.Text}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			h.Type = DiffInsert
			summary.Inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			h.Type = DiffDelete
			summary.Deleted += len(d.Text)
		default:
			h.Type = DiffEqual
		}
		summary.Hunks = append(summary.Hunks, h)
	}
	return summary
}
