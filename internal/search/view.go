package search

import (
	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/engine/match"
)

// ViewState is the read-only state a front end renders.
type ViewState struct {
	Text        string
	Pattern     string
	Replacement string

	// Highlights are ranges into Text. During a stream they hold the
	// single live match of the revealed prefix, if any. After a stream
	// completes they hold every match of the full pattern.
	Highlights match.Set

	// CanCommitReplace is true iff the full pattern matches exactly once
	// in Text. Act then replaces instead of searching.
	CanCommitReplace bool

	Streaming bool
	Progress  float64 // Revealed fraction of the pattern in [0, 1]
	Revealed  int     // Runes of the pattern revealed by the stream
	SessionID uuid.UUID

	Revision uint64
	Modified bool
	Changes  int // Commits since the last reset
}

// ActionLabel returns the label of the affordance Act currently maps to.
func (v ViewState) ActionLabel() string {
	if v.CanCommitReplace {
		return "Replace"
	}
	return "Search"
}

// ActEnabled reports whether Act would do anything.
func (v ViewState) ActEnabled() bool {
	return v.Pattern != ""
}
