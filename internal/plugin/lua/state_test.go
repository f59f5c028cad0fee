package lua

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(context.Background(), "x = 1 + 2"); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if got := s.GetGlobal("x"); got != lua.LNumber(3) {
		t.Errorf("x = %v, want 3", got)
	}
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(`greeting = "hi " .. string.upper("there")`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewState()
	defer s.Close()

	if err := s.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile failed: %v", err)
	}
	if got := s.GetGlobal("greeting").String(); got != "hi THERE" {
		t.Errorf("greeting = %q", got)
	}
}

func TestStateErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		kind string
	}{
		{"syntax", "x = = 1", "syntax"},
		{"runtime", "error('boom')", "runtime"},
		{"nil call", "undefined_fn()", "runtime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			defer s.Close()

			err := s.DoString(context.Background(), tt.code)
			var se *ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *ScriptError", err)
			}
			if se.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", se.Kind, tt.kind)
			}
			if se.Source != "<string>" {
				t.Errorf("Source = %q", se.Source)
			}
		})
	}
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(context.Background(), "while true do end")
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("err = %v, want ErrExecutionTimeout", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed = false after Close")
	}
	if err := s.DoString(context.Background(), "x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("err = %v, want ErrStateClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestSandboxRemovesUnsafeGlobals(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if got := s.GetGlobal(name); got != lua.LNil {
			t.Errorf("%s = %v, want nil", name, got)
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	s := NewState()
	defer s.Close()

	ctx := context.Background()
	if err := s.DoString(ctx, `local m = require("math"); x = m.floor(2.5)`); err != nil {
		t.Fatalf("require math failed: %v", err)
	}
	err := s.DoString(ctx, `require("os")`)
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("require os err = %v", err)
	}
}

func TestSandboxPrint(t *testing.T) {
	var out bytes.Buffer
	s := NewState(WithOutput(&out))
	defer s.Close()

	if err := s.DoString(context.Background(), `print("a", 1, true)`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("output = %q", got)
	}
}

func TestBridgeRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	in := map[string]any{
		"name":  "x",
		"count": int64(2),
		"ratio": 0.5,
		"list":  []any{int64(1), int64(2)},
	}
	got, ok := b.ToGoValue(b.ToLuaValue(in)).(map[string]any)
	if !ok {
		t.Fatalf("ToGoValue returned %T", got)
	}
	if got["name"] != "x" || got["count"] != int64(2) || got["ratio"] != 0.5 {
		t.Errorf("got %v", got)
	}
	if list, ok := got["list"].([]any); !ok || len(list) != 2 {
		t.Errorf("list = %v", got["list"])
	}
	if v := b.ToLuaValue(struct{}{}); v != lua.LNil {
		t.Errorf("unsupported type = %v, want nil", v)
	}
}
