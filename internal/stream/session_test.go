package stream

import (
	"testing"

	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/engine/match"
)

func TestSessionRevealsOneRunePerStep(t *testing.T) {
	snap := buffer.New("the cat sat on the mat").Snapshot()
	s := NewSession("mat")

	if s.Total() != 3 || s.Revealed() != 0 || s.Done() {
		t.Fatalf("unexpected initial state: total=%d revealed=%d", s.Total(), s.Revealed())
	}

	var revealed []int
	for !s.Done() {
		u := s.Step(snap)
		revealed = append(revealed, u.Revealed)
	}

	want := []int{1, 2, 3}
	if len(revealed) != len(want) {
		t.Fatalf("revealed sequence = %v, want %v", revealed, want)
	}
	for i := range want {
		if revealed[i] != want[i] {
			t.Errorf("revealed sequence = %v, want %v", revealed, want)
			break
		}
	}
}

func TestSessionLiveHighlights(t *testing.T) {
	snap := buffer.New("the cat sat on the mat").Snapshot()
	s := NewSession("mat")

	// "m" occurs once: live highlight.
	u := s.Step(snap)
	if u.Prefix != "m" || u.Live.Len() != 1 || u.Live.At(0) != match.NewRange(19, 20) {
		t.Errorf("step 1: prefix=%q live=%v", u.Prefix, u.Live)
	}
	if u.Done {
		t.Error("step 1 should not be done")
	}

	// "ma" occurs once.
	u = s.Step(snap)
	if u.Live.Len() != 1 {
		t.Errorf("step 2: expected one live range, got %v", u.Live)
	}

	// "mat" completes the session with the authoritative final set.
	u = s.Step(snap)
	if !u.Done {
		t.Fatal("step 3 should be done")
	}
	if u.Final.Len() != 1 || u.Final.At(0) != match.NewRange(19, 22) {
		t.Errorf("final = %v", u.Final)
	}
	if u.Progress() != 1 {
		t.Errorf("progress = %v, want 1", u.Progress())
	}
}

func TestSessionMultipleHitsClearLive(t *testing.T) {
	snap := buffer.New("foo bar foo").Snapshot()
	s := NewSession("foo")

	for i := 0; i < 3; i++ {
		u := s.Step(snap)
		if !u.Live.IsEmpty() {
			t.Errorf("step %d: expected no live highlight for %q, got %v", i+1, u.Prefix, u.Live)
		}
		if u.Done && u.Final.Len() != 2 {
			t.Errorf("final = %v, want two ranges", u.Final)
		}
	}
}

func TestSessionSingleHitDoesNotEndEarly(t *testing.T) {
	snap := buffer.New("xyz abc").Snapshot()
	s := NewSession("xyq")

	u := s.Step(snap)
	if u.Live.Len() != 1 || u.Done {
		t.Fatalf("step 1: live=%v done=%v", u.Live, u.Done)
	}
	s.Step(snap)
	u = s.Step(snap)
	if !u.Done || !u.Final.IsEmpty() {
		t.Errorf("expected done with empty final, got done=%v final=%v", u.Done, u.Final)
	}
}

func TestSessionMultibytePattern(t *testing.T) {
	snap := buffer.New("naïve café").Snapshot()
	s := NewSession("café")

	if s.Total() != 4 {
		t.Fatalf("expected 4 runes, got %d", s.Total())
	}
	var prefixes []string
	for !s.Done() {
		prefixes = append(prefixes, s.Step(snap).Prefix)
	}
	want := []string{"c", "ca", "caf", "café"}
	for i := range want {
		if prefixes[i] != want[i] {
			t.Errorf("prefix %d = %q, want %q", i, prefixes[i], want[i])
		}
	}
}

func TestSessionStepAfterDone(t *testing.T) {
	snap := buffer.New("ab").Snapshot()
	s := NewSession("a")
	s.Step(snap)

	u := s.Step(snap)
	if u.Revealed != 1 || !u.Done {
		t.Errorf("step after done advanced: %+v", u)
	}
}

func TestSessionRevisionStamp(t *testing.T) {
	buf := buffer.New("abc")
	s := NewSession("b")
	u := s.Step(buf.Snapshot())
	if u.Final.Revision() != uint64(buf.RevisionID()) {
		t.Error("final set should carry the snapshot revision")
	}
}

func TestSessionEmptyPattern(t *testing.T) {
	s := NewSession("")
	if !s.Done() || s.Total() != 0 || s.Progress() != 0 {
		t.Errorf("empty session: done=%v total=%d progress=%v", s.Done(), s.Total(), s.Progress())
	}
}

func TestSessionUniqueIDs(t *testing.T) {
	a, b := NewSession("x"), NewSession("x")
	if a.ID() == b.ID() {
		t.Error("sessions should have distinct IDs")
	}
}
