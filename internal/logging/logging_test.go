package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "test"})
	l.core.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	}
	return l, &buf
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel('%s') = %d, expected %d", tt.input, got, tt.expected)
		}
	}
	if !ValidLevel("Warn") || ValidLevel("verbose") {
		t.Error("ValidLevel wrong")
	}
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.WithFields(map[string]any{"b": 2, "a": 1}).Info("hello %s", "world")

	want := "2026-01-02T03:04:05.006 [INFO] test: hello world {a=1, b=2}\n"
	if buf.String() != want {
		t.Errorf("got %q\nwant %q", buf.String(), want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") || strings.Contains(out, "[INFO]") {
		t.Errorf("filtered levels written: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: w") || !strings.Contains(out, "[ERROR] test: e") {
		t.Errorf("missing levels: %q", out)
	}
}

func TestLoggerDerivedSharesCore(t *testing.T) {
	l, buf := newTestLogger(LevelInfo)
	child := l.WithComponent("stream")

	l.SetLevel(LevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("derived logger ignored parent level: %q", buf.String())
	}

	child.Error("shown")
	if !strings.Contains(buf.String(), "{component=stream}") {
		t.Errorf("missing component field: %q", buf.String())
	}
	if len(l.fields) != 0 {
		t.Error("WithComponent mutated the parent")
	}
}

func TestLoggerDisable(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.Disable()
	l.Error("x")
	if buf.Len() != 0 {
		t.Error("disabled logger wrote output")
	}
	l.Enable()
	l.Error("x")
	if buf.Len() == 0 {
		t.Error("enabled logger wrote nothing")
	}
}

func TestNullAndDefault(t *testing.T) {
	Null().Error("nothing")

	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
	prev := Get()
	defer Set(prev)

	l, buf := newTestLogger(LevelInfo)
	Set(l)
	Get().Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Error("Set did not replace the default logger")
	}
}
