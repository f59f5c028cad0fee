package lua

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/search"
	"github.com/dshills/findstorm/internal/stream"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "findstorm"

// Module exposes a search controller to Lua.
//
// The controller must have been created with the module's clock so tick
// and finish deliver stream ticks.
type Module struct {
	controller *search.Controller
	clock      *stream.ManualClock
	logger     *logging.Logger
}

// NewModule creates the findstorm module.
func NewModule(c *search.Controller, clock *stream.ManualClock, logger *logging.Logger) *Module {
	if logger == nil {
		logger = logging.Get()
	}
	return &Module{controller: c, clock: clock, logger: logger.WithComponent("script")}
}

// Loader returns the module table. Pass it to State.PreloadModule.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"set_pattern":     m.setPattern,
		"set_replacement": m.setReplacement,
		"act":             m.act,
		"reset":           m.reset,
		"tick":            m.tick,
		"finish":          m.finish,
		"view":            m.view,
		"text":            m.text,
		"log":             m.log,
	})
	L.Push(mod)
	return 1
}

func (m *Module) setPattern(L *lua.LState) int {
	m.controller.SetPattern(L.CheckString(1))
	return 0
}

func (m *Module) setReplacement(L *lua.LState) int {
	m.controller.SetReplacement(L.OptString(1, ""))
	return 0
}

func (m *Module) act(L *lua.LState) int {
	L.Push(lua.LString(m.controller.Act().String()))
	return 1
}

func (m *Module) reset(L *lua.LState) int {
	m.controller.Reset()
	return 0
}

// tick advances the clock n intervals and returns whether a stream is
// still running.
func (m *Module) tick(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 0 {
		L.ArgError(1, "tick count must not be negative")
		return 0
	}
	m.advance(n)
	L.Push(lua.LBool(m.controller.View().Streaming))
	return 1
}

// finish ticks until the stream completes and returns the number of ticks
// it took.
func (m *Module) finish(L *lua.LState) int {
	ticks := 0
	for m.controller.View().Streaming {
		m.advance(1)
		ticks++
	}
	L.Push(lua.LNumber(ticks))
	return 1
}

func (m *Module) advance(n int) {
	if n == 0 {
		return
	}
	m.clock.Advance(time.Duration(n) * m.controller.TickInterval())
}

func (m *Module) view(L *lua.LState) int {
	v := m.controller.View()

	highlights := make([]any, 0, v.Highlights.Len())
	for _, r := range v.Highlights.Ranges() {
		highlights = append(highlights, map[string]any{
			"start": r.Start,
			"stop":  r.End,
		})
	}

	b := NewBridge(L)
	L.Push(b.ToLuaValue(map[string]any{
		"text":        v.Text,
		"pattern":     v.Pattern,
		"replacement": v.Replacement,
		"highlights":  highlights,
		"can_replace": v.CanCommitReplace,
		"streaming":   v.Streaming,
		"progress":    v.Progress,
		"revealed":    v.Revealed,
		"action":      v.ActionLabel(),
		"modified":    v.Modified,
		"changes":     v.Changes,
		"revision":    v.Revision,
	}))
	return 1
}

func (m *Module) text(L *lua.LState) int {
	L.Push(lua.LString(m.controller.View().Text))
	return 1
}

// log writes a message to the findstorm log: log(msg) or log(level, msg).
func (m *Module) log(L *lua.LState) int {
	level, msg := "info", L.CheckString(1)
	if L.GetTop() >= 2 {
		level, msg = msg, L.CheckString(2)
	}
	switch logging.ParseLevel(level) {
	case logging.LevelDebug:
		m.logger.Debug(msg)
	case logging.LevelWarn:
		m.logger.Warn(msg)
	case logging.LevelError:
		m.logger.Error(msg)
	default:
		m.logger.Info(msg)
	}
	return 0
}
