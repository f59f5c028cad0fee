package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Operation(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRemove, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func newStartedWatcher(t *testing.T, path string, opts ...Option) (*Watcher, chan Event) {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return w, events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findstorm.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, events := newStartedWatcher(t, path, WithDebounce(20*time.Millisecond))

	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, events)
	if ev.Path != path {
		t.Errorf("Path = %q, want %q", ev.Path, path)
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findstorm.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, events := newStartedWatcher(t, path, WithDebounce(150*time.Millisecond))

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('0' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	waitEvent(t, events)
	select {
	case ev := <-events:
		t.Errorf("burst produced a second event: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findstorm.toml")

	_, events := newStartedWatcher(t, path, WithDebounce(0))

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, events)
	if ev.Path != path {
		t.Errorf("got event for %q", ev.Path)
	}
}

func TestWatcher_Unwatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if got := w.WatchedFiles(); len(got) != 1 || got[0] != path {
		t.Errorf("WatchedFiles() = %v", got)
	}
	if err := w.Unwatch(path); err != nil {
		t.Fatal(err)
	}
	if got := w.WatchedFiles(); len(got) != 0 {
		t.Errorf("WatchedFiles() after Unwatch = %v", got)
	}
}

func TestWatcher_StopIsFinal(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if !w.IsRunning() {
		t.Error("expected running")
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if w.IsRunning() {
		t.Error("expected stopped")
	}
	if err := w.Start(); err != ErrWatcherClosed {
		t.Errorf("Start() after Stop = %v, want ErrWatcherClosed", err)
	}
	if err := w.Watch("x.toml"); err != ErrWatcherClosed {
		t.Errorf("Watch() after Stop = %v, want ErrWatcherClosed", err)
	}
}
