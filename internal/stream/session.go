package stream

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/engine/match"
)

// Update is the result of one Step.
type Update struct {
	SessionID uuid.UUID
	Pattern   string
	Prefix    string // Revealed part of the pattern
	Revealed  int    // Runes revealed so far
	Total     int    // Runes in the pattern

	// Live is the prefix match set when it holds exactly one range,
	// otherwise empty.
	Live match.Set

	// Done is set on the step that reveals the last rune.
	Done bool

	// Final is the full-pattern match set. Only set when Done.
	Final match.Set
}

// Progress returns the revealed fraction of the pattern in [0, 1].
func (u Update) Progress() float64 {
	return progress(u.Revealed, u.Total)
}

// Session is one simulated typing of a pattern.
type Session struct {
	id      uuid.UUID
	pattern string

	// bounds[i] is the byte length of the first i runes.
	bounds   []int
	revealed int

	timer Timer
}

// NewSession creates a session for pattern with nothing revealed.
func NewSession(pattern string) *Session {
	bounds := make([]int, 1, utf8.RuneCountInString(pattern)+1)
	for i := range pattern {
		if i > 0 {
			bounds = append(bounds, i)
		}
	}
	if pattern != "" {
		bounds = append(bounds, len(pattern))
	}

	return &Session{
		id:      uuid.New(),
		pattern: pattern,
		bounds:  bounds,
	}
}

// ID returns the session's unique handle.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Pattern returns the full pattern.
func (s *Session) Pattern() string {
	return s.pattern
}

// Revealed returns the number of runes revealed so far.
func (s *Session) Revealed() int {
	return s.revealed
}

// Total returns the number of runes in the pattern.
func (s *Session) Total() int {
	return len(s.bounds) - 1
}

// Prefix returns the revealed part of the pattern.
func (s *Session) Prefix() string {
	return s.pattern[:s.bounds[s.revealed]]
}

// Done returns true once the whole pattern is revealed.
func (s *Session) Done() bool {
	return s.revealed >= s.Total()
}

// Progress returns the revealed fraction of the pattern in [0, 1].
func (s *Session) Progress() float64 {
	return progress(s.revealed, s.Total())
}

// Step reveals one more rune and searches snap for the new prefix.
// Calling Step on a done session reports the final state again without
// advancing.
func (s *Session) Step(snap buffer.Snapshot) Update {
	if !s.Done() {
		s.revealed++
	}

	rev := uint64(snap.RevisionID())
	u := Update{
		SessionID: s.id,
		Pattern:   s.pattern,
		Prefix:    s.Prefix(),
		Revealed:  s.revealed,
		Total:     s.Total(),
		Live:      match.Empty(rev),
	}

	if partial := match.FindAt(snap.Text(), u.Prefix, rev); partial.Len() == 1 {
		u.Live = partial
	}

	if s.Done() {
		u.Done = true
		u.Final = match.FindAt(snap.Text(), s.pattern, rev)
	}
	return u
}

func progress(revealed, total int) float64 {
	if total <= 0 {
		return 0
	}
	if revealed >= total {
		return 1
	}
	return float64(revealed) / float64(total)
}
