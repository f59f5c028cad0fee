// Package app runs the interactive terminal front end. It owns the two
// input fields, maps keys to search intents and redraws the screen from the
// controller's view state.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/findstorm/internal/event"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/renderer/backend"
	"github.com/dshills/findstorm/internal/renderer/highlight"
	"github.com/dshills/findstorm/internal/search"
)

// Focus identifies the input field receiving keys.
type Focus uint8

const (
	FocusPattern Focus = iota
	FocusReplacement
)

// Options configures the application.
type Options struct {
	// Theme defaults to highlight.DefaultTheme.
	Theme *highlight.Theme

	// ShowDiff adds the change summary against the original text to the
	// status line.
	ShowDiff bool

	Logger *logging.Logger
}

// Application drives a search controller from a terminal backend.
type Application struct {
	mu sync.Mutex

	controller *search.Controller
	eventBus   event.Bus
	backend    backend.Backend
	logger     *logging.Logger

	theme    *highlight.Theme
	showDiff bool

	pattern     field
	replacement field
	focus       Focus
	message     string // Last outcome shown in the status line

	subs []event.Subscription

	running atomic.Bool
}

// redraw is the payload of interrupt events that request a repaint.
type redraw struct{}

// quit is the payload of the interrupt posted by Shutdown.
type quit struct{}

// New creates an application for c. bus may be nil, in which case the
// screen is only redrawn after key events.
func New(c *search.Controller, bus event.Bus, opts Options) *Application {
	if opts.Theme == nil {
		opts.Theme = highlight.DefaultTheme()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Get()
	}
	return &Application{
		controller:  c,
		eventBus:    bus,
		logger:      opts.Logger.WithComponent("app"),
		theme:       opts.Theme,
		showDiff:    opts.ShowDiff,
		pattern:     field{label: "Find"},
		replacement: field{label: "Replace"},
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// SetTheme replaces the theme and schedules a redraw.
func (app *Application) SetTheme(t *highlight.Theme, showDiff bool) {
	app.mu.Lock()
	if t != nil {
		app.theme = t
	}
	app.showDiff = showDiff
	app.mu.Unlock()
	app.requestRedraw()
}

// Run initialises the backend and processes events until the user quits
// or Shutdown is called.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if err := app.setupSubscriptions(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}
	defer app.cleanupSubscriptions()

	app.logger.Debug("event loop started")
	err := app.eventLoop()
	app.controller.Close()
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// Shutdown asks a running event loop to return.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quit{}})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Controller returns the search controller.
func (app *Application) Controller() *search.Controller {
	return app.controller
}

// Focus returns the field receiving keys.
func (app *Application) Focus() Focus {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.focus
}

// setupSubscriptions repaints on every controller notification so stream
// ticks show up without user input.
func (app *Application) setupSubscriptions() error {
	if app.eventBus == nil {
		return nil
	}
	sub, err := app.eventBus.Subscribe(search.TopicAll, func(_ context.Context, _ event.Event) error {
		app.requestRedraw()
		return nil
	})
	if err != nil {
		return err
	}
	app.subs = append(app.subs, sub)
	return nil
}

func (app *Application) cleanupSubscriptions() {
	for _, sub := range app.subs {
		if err := app.eventBus.Unsubscribe(sub); err != nil {
			app.logger.Warn("unsubscribe %d: %v", sub.ID(), err)
		}
	}
	app.subs = nil
}

func (app *Application) requestRedraw() {
	if app.running.Load() && app.backend != nil {
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: redraw{}})
	}
}
