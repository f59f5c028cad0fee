package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/findstorm/internal/engine"
	"github.com/dshills/findstorm/internal/event"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/renderer/backend"
	"github.com/dshills/findstorm/internal/search"
	"github.com/dshills/findstorm/internal/stream"
)

const testInterval = 10 * time.Millisecond

func newTestApp(t *testing.T, text string) (*Application, *backend.NullBackend, *stream.ManualClock) {
	t.Helper()
	clock := stream.NewManualClock()
	c := search.New(engine.New(text),
		search.WithClock(clock),
		search.WithTickInterval(testInterval),
		search.WithLogger(logging.Null()),
	)
	app := New(c, nil, Options{Logger: logging.Null(), ShowDiff: true})
	b := backend.NewNullBackend(64, 10)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend failed: %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return app, b, clock
}

func typeString(t *testing.T, app *Application, s string) {
	t.Helper()
	for _, r := range s {
		if err := app.handleKeyEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}); err != nil {
			t.Fatalf("key %q: %v", r, err)
		}
	}
}

func press(t *testing.T, app *Application, k backend.Key) error {
	t.Helper()
	return app.handleKeyEvent(backend.Event{Type: backend.EventKey, Key: k})
}

func TestTypingUpdatesController(t *testing.T) {
	app, _, _ := newTestApp(t, "hello world")

	typeString(t, app, "wor")
	if err := press(t, app, backend.KeyTab); err != nil {
		t.Fatal(err)
	}
	typeString(t, app, "WOR")

	v := app.Controller().View()
	if v.Pattern != "wor" || v.Replacement != "WOR" {
		t.Errorf("pattern=%q replacement=%q", v.Pattern, v.Replacement)
	}
	if app.Focus() != FocusReplacement {
		t.Errorf("Focus = %v, want FocusReplacement", app.Focus())
	}
}

func TestFieldEditingKeys(t *testing.T) {
	app, _, _ := newTestApp(t, "text")

	typeString(t, app, "abc")
	_ = press(t, app, backend.KeyLeft)
	_ = press(t, app, backend.KeyBackspace)
	if got := app.Controller().View().Pattern; got != "ac" {
		t.Errorf("after backspace pattern = %q, want %q", got, "ac")
	}
	_ = press(t, app, backend.KeyHome)
	_ = press(t, app, backend.KeyDelete)
	if got := app.Controller().View().Pattern; got != "c" {
		t.Errorf("after delete pattern = %q, want %q", got, "c")
	}
	_ = press(t, app, backend.KeyEnd)
	typeString(t, app, "d")
	if got := app.Controller().View().Pattern; got != "cd" {
		t.Errorf("after end pattern = %q, want %q", got, "cd")
	}
	_ = press(t, app, backend.KeyCtrlU)
	if got := app.Controller().View().Pattern; got != "" {
		t.Errorf("after clear pattern = %q, want empty", got)
	}
}

func TestEnterReplacesSingleMatch(t *testing.T) {
	app, b, _ := newTestApp(t, "hello world")

	typeString(t, app, "world")
	_ = press(t, app, backend.KeyTab)
	typeString(t, app, "there")

	app.draw()
	if row := b.Row(rowAction); !strings.Contains(row, "[ Replace ]") {
		t.Errorf("action row = %q, want Replace button", row)
	}

	_ = press(t, app, backend.KeyEnter)
	app.draw()

	if got := app.Controller().View().Text; got != "hello there" {
		t.Errorf("Text = %q", got)
	}
	if row := b.Row(textTop); !strings.HasPrefix(row, "hello there") {
		t.Errorf("text row = %q", row)
	}
	status := b.Row(9)
	if !strings.Contains(status, "1 change(s)") || !strings.Contains(status, "replaced") {
		t.Errorf("status row = %q", status)
	}
}

func TestEnterStreamsAndDrawsProgress(t *testing.T) {
	app, b, clock := newTestApp(t, "ab x ab")

	typeString(t, app, "ab")
	_ = press(t, app, backend.KeyEnter)
	app.draw()
	if row := b.Row(rowAction); !strings.Contains(row, "[ Search ]") || !strings.Contains(row, "0%") {
		t.Errorf("action row while streaming = %q", row)
	}

	clock.Advance(2 * testInterval)
	app.draw()

	v := app.Controller().View()
	if v.Streaming || v.Highlights.Len() != 2 {
		t.Fatalf("streaming=%v highlights=%d", v.Streaming, v.Highlights.Len())
	}
	if row := b.Row(rowAction); !strings.Contains(row, "100%") {
		t.Errorf("action row after stream = %q", row)
	}
	if status := b.Row(9); !strings.Contains(status, "2 match(es)") {
		t.Errorf("status row = %q", status)
	}
	if cell := b.GetCell(0, textTop); cell.Style != app.theme.Match {
		t.Errorf("first text cell style = %+v, want match style", cell.Style)
	}
}

func TestResetClearsFields(t *testing.T) {
	app, _, _ := newTestApp(t, "one two")

	typeString(t, app, "two")
	_ = press(t, app, backend.KeyEnter)
	_ = press(t, app, backend.KeyTab)
	_ = press(t, app, backend.KeyCtrlR)

	v := app.Controller().View()
	if v.Text != "one two" || v.Pattern != "" {
		t.Errorf("after reset text=%q pattern=%q", v.Text, v.Pattern)
	}
	if app.Focus() != FocusPattern {
		t.Errorf("Focus = %v after reset", app.Focus())
	}
	if app.pattern.String() != "" {
		t.Errorf("pattern field = %q", app.pattern.String())
	}
}

func TestQuitKeys(t *testing.T) {
	app, _, _ := newTestApp(t, "x")
	for _, k := range []backend.Key{backend.KeyEscape, backend.KeyCtrlC} {
		if err := press(t, app, k); !errors.Is(err, ErrQuit) {
			t.Errorf("key %v: err = %v, want ErrQuit", k, err)
		}
	}
}

func TestRunProcessesQueuedEvents(t *testing.T) {
	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		t.Fatal(err)
	}
	defer bus.Stop(context.Background())
	c := search.New(engine.New("find me"), search.WithBus(bus), search.WithLogger(logging.Null()))

	app := New(c, bus, Options{Logger: logging.Null()})
	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run without backend err = %v", err)
	}

	b := backend.NewNullBackend(30, 8)
	_ = app.SetBackend(b)
	for _, r := range "me" {
		b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r})
	}
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyTab})
	for _, r := range "you" {
		b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r})
	}
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEnter})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEscape})

	if err := app.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if app.IsRunning() {
		t.Error("IsRunning after Run returned")
	}
	if got := c.View().Text; got != "find you" {
		t.Errorf("Text = %q, want %q", got, "find you")
	}
	if b.Shows() == 0 {
		t.Error("screen never shown")
	}
}

func TestShutdownStopsRun(t *testing.T) {
	app, b, _ := newTestApp(t, "x")

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	app.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	if _, _, visible := b.Cursor(); !visible {
		t.Error("cursor not shown")
	}
}
