package lua

import (
	"context"

	"github.com/dshills/findstorm/internal/engine"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/search"
	"github.com/dshills/findstorm/internal/stream"
)

// Runner executes scripts against a search controller driven by a manual
// clock.
type Runner struct {
	state      *State
	controller *search.Controller
	clock      *stream.ManualClock
	logger     *logging.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	logger        *logging.Logger
	searchOptions []search.Option
	stateOptions  []StateOption
}

// WithLogger sets the logger for the runner and the script log function.
func WithLogger(l *logging.Logger) RunnerOption {
	return func(c *runnerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSearchOptions passes options to the search controller. A clock
// option is overridden by the runner's manual clock.
func WithSearchOptions(opts ...search.Option) RunnerOption {
	return func(c *runnerConfig) {
		c.searchOptions = append(c.searchOptions, opts...)
	}
}

// WithStateOptions passes options to the Lua state.
func WithStateOptions(opts ...StateOption) RunnerOption {
	return func(c *runnerConfig) {
		c.stateOptions = append(c.stateOptions, opts...)
	}
}

// NewRunner creates a runner over eng with the findstorm module preloaded.
func NewRunner(eng *engine.Engine, opts ...RunnerOption) *Runner {
	cfg := runnerConfig{logger: logging.Get()}
	for _, opt := range opts {
		opt(&cfg)
	}

	clock := stream.NewManualClock()
	searchOpts := append([]search.Option{search.WithLogger(cfg.logger)}, cfg.searchOptions...)
	searchOpts = append(searchOpts, search.WithClock(clock))

	r := &Runner{
		state:      NewState(cfg.stateOptions...),
		controller: search.New(eng, searchOpts...),
		clock:      clock,
		logger:     cfg.logger,
	}
	r.state.PreloadModule(ModuleName, NewModule(r.controller, clock, cfg.logger).Loader)
	return r
}

// Controller returns the controller scripts drive.
func (r *Runner) Controller() *search.Controller {
	return r.controller
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	r.logger.Debug("running script %s", path)
	return r.state.DoFile(ctx, path)
}

// RunString executes Lua source.
func (r *Runner) RunString(ctx context.Context, code string) error {
	return r.state.DoString(ctx, code)
}

// Close stops the controller and releases the Lua state.
func (r *Runner) Close() error {
	r.controller.Close()
	return r.state.Close()
}
