package loader

import (
	"errors"
	"io/fs"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/findstorm.toml", `
[stream]
tick_interval = "80ms"

[logging]
level = "debug"
`)

	cfg, err := NewTOMLLoaderWithFS(memfs, "/findstorm.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := GetByPath(cfg, "stream.tick_interval"); v != "80ms" {
		t.Errorf("stream.tick_interval = %v, want 80ms", v)
	}
	if v, _ := GetByPath(cfg, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil || cfg != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", cfg, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[stream\ntick_interval = 1\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 1 {
		t.Errorf("Line = %d, want 1", perr.Line)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/findstorm.yaml", `
stream:
  tick_interval: 50ms
ui:
  match_background: "#ffcc00"
  show_diff: true
`)

	cfg, err := NewYAMLLoaderWithFS(memfs, "/findstorm.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v, _ := GetByPath(cfg, "stream.tick_interval"); v != "50ms" {
		t.Errorf("stream.tick_interval = %v", v)
	}
	if v, _ := GetByPath(cfg, "ui.show_diff"); v != true {
		t.Errorf("ui.show_diff = %v", v)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "stream: [\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"a.toml", false},
		{"a.TOML", false},
		{"a.yaml", false},
		{"a.yml", false},
		{"a.json", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForPath(NewMemFS(), tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("FINDSTORM_")
	l.environ = func() []string {
		return []string{
			"FINDSTORM_LOG_LEVEL=warn",
			"FINDSTORM_TICK_INTERVAL=250ms",
			"FINDSTORM_UI_SHOW_DIFF=yes",
			"FINDSTORM_NOSECTION=1",
			"HOME=/root",
		}
	}

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := GetByPath(cfg, "logging.level"); v != "warn" {
		t.Errorf("logging.level = %v", v)
	}
	if v, _ := GetByPath(cfg, "stream.tick_interval"); v != 250*time.Millisecond {
		t.Errorf("stream.tick_interval = %v", v)
	}
	if v, _ := GetByPath(cfg, "ui.show_diff"); v != true {
		t.Errorf("ui.show_diff = %v", v)
	}
	if _, ok := cfg["home"]; ok {
		t.Error("unprefixed variables must be ignored")
	}
	if len(cfg) != 3 {
		t.Errorf("unexpected sections: %v", cfg)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"2s", 2 * time.Second},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"stream":  map[string]any{"tick_interval": "120ms"},
		"logging": map[string]any{"level": "info", "file": "a.log"},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"ui":      map[string]any{"show_diff": true},
	}

	got := DeepMerge(dst, src)

	if v, _ := GetByPath(got, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if v, _ := GetByPath(got, "logging.file"); v != "a.log" {
		t.Errorf("logging.file = %v, want a.log", v)
	}
	if v, _ := GetByPath(got, "stream.tick_interval"); v != "120ms" {
		t.Errorf("stream.tick_interval = %v", v)
	}
	if v, _ := GetByPath(got, "ui.show_diff"); v != true {
		t.Errorf("ui.show_diff = %v", v)
	}
}

func TestSetGetByPath(t *testing.T) {
	m := map[string]any{"a": "scalar"}
	SetByPath(m, "a.b.c", 1)
	if v, ok := GetByPath(m, "a.b.c"); !ok || v != 1 {
		t.Errorf("GetByPath = %v, %v", v, ok)
	}
	if _, ok := GetByPath(m, "a.x"); ok {
		t.Error("missing path should not be found")
	}
	if _, ok := GetByPath(m, "a.b.c.d"); ok {
		t.Error("path through a scalar should not be found")
	}
}
