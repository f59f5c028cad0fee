// Package main is the entry point for findstorm.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/findstorm/internal/app"
	"github.com/dshills/findstorm/internal/config"
	"github.com/dshills/findstorm/internal/engine"
	"github.com/dshills/findstorm/internal/event"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/plugin/lua"
	"github.com/dshills/findstorm/internal/renderer/backend"
	"github.com/dshills/findstorm/internal/renderer/highlight"
	"github.com/dshills/findstorm/internal/search"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	ConfigPath  string
	LogLevel    string
	Pattern     string
	Replacement string
	Acts        int
	Script      string
	Tick        time.Duration
	Segments    bool
	File        string

	showVersion bool
	showHelp    bool
}

// headless reports whether the run must not open the terminal UI.
func (o options) headless() bool {
	return o.Pattern != "" || o.Segments
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.showHelp {
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "findstorm %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	manager := config.NewManager(config.WithFile(opts.ConfigPath), config.WithLogger(logging.Null()))
	defer manager.Close()
	if err := manager.Load(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg := manager.Config()
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Tick > 0 {
		cfg.Stream.TickInterval = opts.Tick
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	interactive := opts.Script == "" && !opts.headless() && isTerminal(os.Stdout)
	logger, closeLog, err := newLogger(cfg.Logging, interactive, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.Set(logger)
	manager.SetLogger(logger)

	text, err := readInput(opts.File, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	eng := engine.New(text)

	switch {
	case opts.Script != "":
		err = runScript(eng, opts.Script, stdout, logger)
	case interactive:
		err = runInteractive(eng, manager, cfg, logger)
	default:
		err = runHeadless(stdout, eng, headlessOptions{
			Pattern:     opts.Pattern,
			Replacement: opts.Replacement,
			Acts:        opts.Acts,
			Segments:    opts.Segments,
			Interval:    cfg.Stream.TickInterval,
			Logger:      logger,
		})
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("findstorm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.Pattern, "pattern", "", "Search pattern (runs headless)")
	fs.StringVar(&opts.Replacement, "replace", "", "Replacement text; empty deletes")
	fs.IntVar(&opts.Acts, "act", 1, "Number of act intents in headless mode")
	fs.StringVar(&opts.Script, "script", "", "Lua script to run")
	fs.DurationVar(&opts.Tick, "tick", 0, "Stream tick interval (overrides config)")
	fs.BoolVar(&opts.Segments, "segments", false, "Print highlight segments instead of the text")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "findstorm - incremental search and replace\n\n")
		fmt.Fprintf(stderr, "Usage: findstorm [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  findstorm notes.txt                       Search interactively\n")
		fmt.Fprintf(stderr, "  findstorm -pattern foo -replace bar f.txt Replace a unique match\n")
		fmt.Fprintf(stderr, "  cat f.txt | findstorm -pattern foo -segments\n")
		fmt.Fprintf(stderr, "  findstorm -script demo.lua f.txt          Drive the search from Lua\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.showHelp {
		fs.Usage()
		return opts, nil
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}
	if opts.Acts < 0 {
		return opts, fmt.Errorf("invalid -act %d", opts.Acts)
	}
	if fs.NArg() > 1 {
		return opts, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	opts.File = fs.Arg(0)
	return opts, nil
}

// newLogger builds the process logger. The terminal UI owns the screen, so
// it only logs when a log file is configured.
func newLogger(cfg config.LoggingConfig, interactive bool, stderr io.Writer) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.Level)
	if cfg.File == "" {
		if interactive {
			return logging.Null(), func() {}, nil
		}
		return logging.New(logging.Config{Level: level, Output: stderr, Prefix: "findstorm"}), func() {}, nil
	}

	f, err := logging.OpenFile(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	l := logging.New(logging.Config{Level: level, Output: f, Prefix: "findstorm"})
	return l, func() { _ = f.Close() }, nil
}

func runScript(eng *engine.Engine, path string, stdout io.Writer, logger *logging.Logger) error {
	runner := lua.NewRunner(eng,
		lua.WithLogger(logger),
		lua.WithStateOptions(lua.WithOutput(stdout)),
	)
	defer runner.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runner.RunFile(ctx, path)
}

func runInteractive(eng *engine.Engine, manager *config.Manager, cfg config.Config, logger *logging.Logger) error {
	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = bus.Stop(ctx)
	}()

	controller := search.New(eng,
		search.WithBus(bus),
		search.WithLogger(logger),
		search.WithTickInterval(cfg.Stream.TickInterval),
	)

	theme, err := highlight.DefaultTheme().WithMatchColors(cfg.UI.MatchForeground, cfg.UI.MatchBackground)
	if err != nil {
		return err
	}
	application := app.New(controller, bus, app.Options{
		Theme:    theme,
		ShowDiff: cfg.UI.ShowDiff,
		Logger:   logger,
	})

	manager.OnChange(func(_, next config.Config) {
		controller.SetTickInterval(next.Stream.TickInterval)
		logger.SetLevel(logging.ParseLevel(next.Logging.Level))
		t, err := highlight.DefaultTheme().WithMatchColors(next.UI.MatchForeground, next.UI.MatchBackground)
		if err != nil {
			logger.Warn("theme: %v", err)
			return
		}
		application.SetTheme(t, next.UI.ShowDiff)
	})
	if err := manager.Watch(); err != nil {
		logger.Warn("config watch disabled: %v", err)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	return application.Run()
}
