package config

import (
	"fmt"
	"sync"

	"github.com/dshills/findstorm/internal/config/loader"
	"github.com/dshills/findstorm/internal/config/watcher"
	"github.com/dshills/findstorm/internal/logging"
)

// ChangeHandler is called after a reload with the previous and new config.
type ChangeHandler func(prev, next Config)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithFile sets the configuration file. Its extension selects the format.
func WithFile(path string) ManagerOption {
	return func(m *Manager) {
		m.path = path
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) ManagerOption {
	return func(m *Manager) {
		m.envPrefix = prefix
	}
}

// WithFileSystem sets the file system the file loader reads from.
func WithFileSystem(fsys loader.FileSystem) ManagerOption {
	return func(m *Manager) {
		m.fs = fsys
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager owns the current Config.
type Manager struct {
	mu sync.RWMutex

	path      string
	envPrefix string
	fs        loader.FileSystem
	logger    *logging.Logger

	current  Config
	handlers []ChangeHandler
	watcher  *watcher.Watcher
	closed   bool
}

// NewManager creates a manager holding the default config. Call Load to
// read the file and environment.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		envPrefix: loader.DefaultEnvPrefix,
		fs:        loader.DefaultFS(),
		logger:    logging.Get(),
		current:   Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithComponent("config")
	return m
}

// Path returns the configuration file path, or "" if none.
func (m *Manager) Path() string {
	return m.path
}

// SetLogger replaces the logger. The config decides where logs go, so the
// process logger exists only after the first Load.
func (m *Manager) SetLogger(l *logging.Logger) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l.WithComponent("config")
}

// Config returns the current config.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnChange registers a handler called after each successful reload that
// changed the config.
func (m *Manager) OnChange(h ChangeHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

// Load reads all layers and replaces the current config. On error the
// current config is kept.
func (m *Manager) Load() error {
	_, err := m.reload()
	return err
}

// Reload is Load, notifying change handlers if the config changed.
func (m *Manager) Reload() error {
	changed, err := m.reload()
	if err != nil || !changed.ok {
		return err
	}

	m.mu.RLock()
	handlers := make([]ChangeHandler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.RUnlock()

	for _, h := range handlers {
		h(changed.prev, changed.next)
	}
	return nil
}

type change struct {
	prev, next Config
	ok         bool
}

func (m *Manager) reload() (change, error) {
	merged, err := m.merge()
	if err != nil {
		return change{}, err
	}
	cfg, err := FromMap(merged)
	if err != nil {
		return change{}, fmt.Errorf("config %s: %w", m.describe(), err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return change{}, ErrClosed
	}
	prev := m.current
	m.current = cfg
	return change{prev: prev, next: cfg, ok: prev != cfg}, nil
}

// merge layers defaults, file and environment.
func (m *Manager) merge() (map[string]any, error) {
	merged := Default().Map()

	if m.path != "" {
		l, err := loader.ForPath(m.fs, m.path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		if file == nil {
			m.logger.Debug("config file %s not found, using defaults", m.path)
		}
		merged = loader.DeepMerge(merged, file)
	}

	if m.envPrefix != "" {
		env, err := loader.NewEnvLoader(m.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}
	return merged, nil
}

func (m *Manager) describe() string {
	if m.path == "" {
		return "(defaults)"
	}
	return m.path
}

// Watch reloads the config whenever the file changes. Reload errors are
// logged and the previous config stays in effect. Watch is a no-op without
// a file.
func (m *Manager) Watch(opts ...watcher.Option) error {
	if m.path == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.watcher != nil {
		return nil
	}

	w, err := watcher.New(opts...)
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Watch(m.path); err != nil {
		_ = w.Stop()
		return fmt.Errorf("config watcher: %w", err)
	}
	w.OnChange(m.handleFileChange)
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return fmt.Errorf("config watcher: %w", err)
	}
	m.watcher = w
	return nil
}

func (m *Manager) handleFileChange(ev watcher.Event) {
	m.logger.Debug("config file %s: %s", ev.Op, ev.Path)
	if err := m.Reload(); err != nil {
		m.logger.Warn("reload failed, keeping previous config: %v", err)
		return
	}
	m.logger.Info("config reloaded from %s", ev.Path)
}

// Close stops watching. The current config stays readable.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w != nil {
		return w.Stop()
	}
	return nil
}
