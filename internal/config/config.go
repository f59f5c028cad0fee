package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/findstorm/internal/config/loader"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/renderer/core"
)

// Interval bounds for stream.tick_interval.
const (
	MinTickInterval = time.Millisecond
	MaxTickInterval = 10 * time.Second
)

// Config is the typed configuration.
type Config struct {
	Stream  StreamConfig
	Logging LoggingConfig
	UI      UIConfig
}

// StreamConfig configures the streaming search.
type StreamConfig struct {
	// TickInterval is the delay between revealed pattern runes.
	TickInterval time.Duration
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level string
	// File receives log output. Empty means stderr in headless mode and
	// no logging in the terminal UI.
	File string
}

// UIConfig configures the terminal front end.
type UIConfig struct {
	MatchForeground string
	MatchBackground string
	// ShowDiff adds an inserted/deleted summary to the status line.
	ShowDiff bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Stream: StreamConfig{TickInterval: 120 * time.Millisecond},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			MatchForeground: "black",
			MatchBackground: "yellow",
			ShowDiff:        true,
		},
	}
}

// Map returns c as a nested map, the form loaders produce.
func (c Config) Map() map[string]any {
	return map[string]any{
		"stream": map[string]any{
			"tick_interval": c.Stream.TickInterval.String(),
		},
		"logging": map[string]any{
			"level": c.Logging.Level,
			"file":  c.Logging.File,
		},
		"ui": map[string]any{
			"match_foreground": c.UI.MatchForeground,
			"match_background": c.UI.MatchBackground,
			"show_diff":        c.UI.ShowDiff,
		},
	}
}

// FromMap decodes a merged configuration map. Keys absent from m keep their
// default values; unknown keys are ignored.
func FromMap(m map[string]any) (Config, error) {
	c := Default()
	var errs []error

	if v, ok := loader.GetByPath(m, "stream.tick_interval"); ok {
		d, err := toDuration("stream.tick_interval", v)
		errs = append(errs, err)
		if err == nil {
			c.Stream.TickInterval = d
		}
	}
	decodeString(m, "logging.level", &c.Logging.Level, &errs)
	decodeString(m, "logging.file", &c.Logging.File, &errs)
	decodeString(m, "ui.match_foreground", &c.UI.MatchForeground, &errs)
	decodeString(m, "ui.match_background", &c.UI.MatchBackground, &errs)
	if v, ok := loader.GetByPath(m, "ui.show_diff"); ok {
		if b, isBool := v.(bool); isBool {
			c.UI.ShowDiff = b
		} else {
			errs = append(errs, &TypeError{Path: "ui.show_diff", Expected: "bool", Actual: fmt.Sprintf("%T", v)})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Validate checks value ranges and formats.
func (c Config) Validate() error {
	var errs []error
	if d := c.Stream.TickInterval; d < MinTickInterval || d > MaxTickInterval {
		errs = append(errs, &ValidationError{
			Path:    "stream.tick_interval",
			Message: fmt.Sprintf("must be between %s and %s", MinTickInterval, MaxTickInterval),
			Value:   d,
		})
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
		})
	}
	for path, color := range map[string]string{
		"ui.match_foreground": c.UI.MatchForeground,
		"ui.match_background": c.UI.MatchBackground,
	} {
		if _, err := core.ParseColor(color); err != nil {
			errs = append(errs, &ValidationError{Path: path, Message: err.Error(), Value: color})
		}
	}
	return errors.Join(errs...)
}

func decodeString(m map[string]any, path string, dst *string, errs *[]error) {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return
	}
	s, isString := v.(string)
	if !isString {
		*errs = append(*errs, &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)})
		return
	}
	*dst = s
}

// toDuration accepts a duration string, a time.Duration, or an integer
// number of milliseconds.
func toDuration(path string, v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: "invalid duration", Value: d}
		}
		return parsed, nil
	case int:
		return time.Duration(d) * time.Millisecond, nil
	case int64:
		return time.Duration(d) * time.Millisecond, nil
	case uint64:
		return time.Duration(d) * time.Millisecond, nil
	case float64:
		return time.Duration(d * float64(time.Millisecond)), nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("%T", v)}
	}
}
