package app

import (
	"github.com/dshills/findstorm/internal/renderer/backend"
	"github.com/dshills/findstorm/internal/search"
)

// eventLoop draws, then blocks on the backend until an event arrives.
func (app *Application) eventLoop() error {
	app.draw()
	for {
		ev := app.backend.PollEvent()
		if err := app.handleBackendEvent(ev); err != nil {
			return err
		}
		app.draw()
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventResize:
		app.backend.Clear()
		return nil
	case backend.EventInterrupt:
		if _, ok := ev.Data.(quit); ok {
			return ErrQuit
		}
		return nil
	default:
		return nil
	}
}

// handleKeyEvent maps a key to a field edit or a search intent.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyEnter:
		app.act()
	case backend.KeyCtrlR:
		app.reset()
	case backend.KeyCtrlL:
		app.backend.Clear()
	case backend.KeyTab, backend.KeyBacktab, backend.KeyUp, backend.KeyDown:
		app.toggleFocus()
	default:
		app.editField(ev)
	}
	return nil
}

func (app *Application) act() {
	outcome := app.controller.Act()

	app.mu.Lock()
	defer app.mu.Unlock()
	switch outcome {
	case search.OutcomeReplaced:
		app.message = "replaced"
	case search.OutcomeRejected:
		app.message = "replacement rejected"
	case search.OutcomeStreaming:
		app.message = "searching"
	default:
		app.message = ""
	}
	app.logger.Debug("act: %s", outcome)
}

func (app *Application) reset() {
	app.controller.Reset()

	app.mu.Lock()
	defer app.mu.Unlock()
	app.pattern.clear()
	app.replacement.clear()
	app.focus = FocusPattern
	app.message = "reset"
}

func (app *Application) toggleFocus() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.focus == FocusPattern {
		app.focus = FocusReplacement
	} else {
		app.focus = FocusPattern
	}
}

// editField applies an editing key to the focused field and forwards the
// new text to the controller when it changed.
func (app *Application) editField(ev backend.Event) {
	app.mu.Lock()
	f := app.activeField()
	changed := false
	switch ev.Key {
	case backend.KeyRune:
		f.insert(ev.Rune)
		changed = true
	case backend.KeyBackspace:
		changed = f.backspace()
	case backend.KeyDelete:
		changed = f.delete()
	case backend.KeyCtrlU:
		changed = f.clear()
	case backend.KeyLeft:
		f.moveLeft()
	case backend.KeyRight:
		f.moveRight()
	case backend.KeyHome:
		f.home()
	case backend.KeyEnd:
		f.end()
	}
	focus, text := app.focus, f.String()
	app.mu.Unlock()

	if !changed {
		return
	}
	if focus == FocusPattern {
		app.controller.SetPattern(text)
	} else {
		app.controller.SetReplacement(text)
	}
}

// activeField must be called with app.mu held.
func (app *Application) activeField() *field {
	if app.focus == FocusReplacement {
		return &app.replacement
	}
	return &app.pattern
}
