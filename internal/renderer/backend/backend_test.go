package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/findstorm/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(10, 3)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cell := core.NewStyledCell('X', core.DefaultStyle().Bold())
	b.SetCell(2, 1, cell)
	if got := b.GetCell(2, 1); got != cell {
		t.Errorf("GetCell = %+v, want %+v", got, cell)
	}

	b.SetCell(-1, 0, cell)
	b.SetCell(10, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndRow(t *testing.T) {
	b := NewNullBackend(5, 2)
	_ = b.Init()

	b.Fill(core.RectFromSize(0, 1, 1, 3), core.NewStyledCell('.', core.DefaultStyle()))
	if got := b.Row(0); got != " ... " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := b.Row(1); got != "     " {
		t.Errorf("Row(1) = %q", got)
	}

	b.Clear()
	if got := b.Row(0); got != "     " {
		t.Errorf("Row(0) after Clear = %q", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(5, 2)
	_ = b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	b.Resize(8, 4)

	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("first event = %+v", ev)
	}
	ev = b.PollEvent()
	if ev.Type != EventResize || ev.Width != 8 || ev.Height != 4 {
		t.Errorf("second event = %+v", ev)
	}
	if w, h := b.Size(); w != 8 || h != 4 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(20, 4)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalCells(t *testing.T) {
	term, _ := newSimTerminal(t)

	style := core.DefaultStyle().
		WithForeground(core.ColorFromIndex(3)).
		WithBackground(core.ColorFromRGB(10, 20, 30)).
		Bold().
		Reverse()
	term.SetCell(1, 1, core.NewStyledCell('Z', style))
	term.Show()

	got := term.GetCell(1, 1)
	if got.Rune != 'Z' {
		t.Errorf("rune = %q, want Z", got.Rune)
	}
	if got.Style != style {
		t.Errorf("style = %+v, want %+v", got.Style, style)
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlR, 0, tcell.ModCtrl)

	want := []Event{
		{Type: EventKey, Key: KeyRune, Rune: 'q'},
		{Type: EventKey, Key: KeyEnter},
		{Type: EventKey, Key: KeyCtrlR},
	}
	for i, w := range want {
		ev := nextKey(term)
		if ev.Key != w.Key {
			t.Errorf("event %d key = %v, want %v", i, ev.Key, w.Key)
		}
		if w.Key == KeyRune && ev.Rune != w.Rune {
			t.Errorf("event %d rune = %q, want %q", i, ev.Rune, w.Rune)
		}
	}
}

func TestTerminalInterrupt(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.PostEvent(Event{Type: EventInterrupt, Data: "redraw"})
	for {
		ev := term.PollEvent()
		if ev.Type == EventInterrupt {
			if ev.Data != "redraw" {
				t.Errorf("Data = %v", ev.Data)
			}
			return
		}
	}
}

// nextKey skips the resize event the simulation screen emits on SetSize.
func nextKey(term *Terminal) Event {
	for {
		if ev := term.PollEvent(); ev.Type == EventKey {
			return ev
		}
	}
}
