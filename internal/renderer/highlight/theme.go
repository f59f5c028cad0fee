package highlight

import (
	"fmt"

	"github.com/dshills/findstorm/internal/renderer/core"
)

// Theme holds the styles the UI draws with.
type Theme struct {
	Name string

	Plain core.Style
	Match core.Style
	Live  core.Style

	Label       core.Style
	Field       core.Style
	FieldActive core.Style

	Button         core.Style
	ButtonDisabled core.Style

	Progress      core.Style
	ProgressEmpty core.Style
	Status        core.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	yellow := core.ColorFromIndex(3)
	black := core.ColorFromIndex(0)
	cyan := core.ColorFromIndex(6)
	gray := core.ColorFromIndex(8)

	return &Theme{
		Name:           "default",
		Plain:          core.DefaultStyle(),
		Match:          core.DefaultStyle().WithForeground(black).WithBackground(yellow),
		Live:           core.DefaultStyle().WithForeground(black).WithBackground(cyan).Underline(),
		Label:          core.DefaultStyle().Bold(),
		Field:          core.DefaultStyle().Underline(),
		FieldActive:    core.DefaultStyle().Underline().Bold(),
		Button:         core.DefaultStyle().Reverse().Bold(),
		ButtonDisabled: core.DefaultStyle().Dim(),
		Progress:       core.DefaultStyle().WithForeground(cyan),
		ProgressEmpty:  core.DefaultStyle().WithForeground(gray),
		Status:         core.DefaultStyle().Reverse(),
	}
}

// StyleFor returns the style for a segment kind.
func (t *Theme) StyleFor(k Kind) core.Style {
	switch k {
	case KindMatch:
		return t.Match
	case KindLive:
		return t.Live
	default:
		return t.Plain
	}
}

// WithMatchColors returns a copy of t whose match style uses the given
// colors, as accepted by core.ParseColor. Empty strings keep the current
// color.
func (t *Theme) WithMatchColors(fg, bg string) (*Theme, error) {
	out := *t
	if fg != "" {
		c, err := core.ParseColor(fg)
		if err != nil {
			return nil, fmt.Errorf("match foreground: %w", err)
		}
		out.Match.Foreground = c
	}
	if bg != "" {
		c, err := core.ParseColor(bg)
		if err != nil {
			return nil, fmt.Errorf("match background: %w", err)
		}
		out.Match.Background = c
	}
	return &out, nil
}
