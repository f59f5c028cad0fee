package app

import (
	"fmt"
	"strings"

	"github.com/dshills/findstorm/internal/renderer/core"
	"github.com/dshills/findstorm/internal/renderer/highlight"
	"github.com/dshills/findstorm/internal/search"
)

// Screen rows above the text area.
const (
	rowPattern = iota
	rowReplacement
	rowAction
	rowRule
	textTop
)

const (
	labelWidth    = 9 // len("Replace: ")
	progressWidth = 20
)

// draw repaints the whole screen from the controller's view.
func (app *Application) draw() {
	v := app.controller.View()

	app.mu.Lock()
	defer app.mu.Unlock()

	b := app.backend
	width, height := b.Size()
	b.Fill(core.RectFromSize(0, 0, height, width), core.EmptyCell())

	cursorX := app.drawField(rowPattern, width, &app.pattern, app.focus == FocusPattern)
	replX := app.drawField(rowReplacement, width, &app.replacement, app.focus == FocusReplacement)
	if app.focus == FocusReplacement {
		cursorX = replX
	}
	app.drawAction(rowAction, width, v)
	app.drawRule(rowRule, width)
	app.drawText(textTop, height-1, width, v)
	app.drawStatus(height-1, width, v)

	cursorY := rowPattern
	if app.focus == FocusReplacement {
		cursorY = rowReplacement
	}
	b.ShowCursor(cursorX, cursorY)
	b.Show()
}

// drawField draws a labelled input and returns the cursor column.
func (app *Application) drawField(y, width int, f *field, active bool) int {
	x := app.drawString(0, y, width, f.label+":", app.theme.Label)

	style := app.theme.Field
	if active {
		style = app.theme.FieldActive
	}
	x = max(x+1, labelWidth)
	cursorX := x + core.StringWidth(string(f.runes[:f.cursor]))
	end := app.drawString(x, y, width, f.String(), style)
	for ; end < width; end++ {
		app.backend.SetCell(end, y, core.NewStyledCell(' ', style))
	}
	return min(cursorX, width-1)
}

// drawAction draws the Search/Replace button and the stream progress bar.
func (app *Application) drawAction(y, width int, v search.ViewState) {
	style := app.theme.Button
	if !v.ActEnabled() {
		style = app.theme.ButtonDisabled
	}
	x := app.drawString(0, y, width, "[ "+v.ActionLabel()+" ]", style)
	if !v.Streaming && v.Progress == 0 {
		return
	}

	x += 2
	filled := int(v.Progress*progressWidth + 0.5)
	x = app.drawString(x, y, width, strings.Repeat("█", filled), app.theme.Progress)
	x = app.drawString(x, y, width, strings.Repeat("░", progressWidth-filled), app.theme.ProgressEmpty)
	app.drawString(x+1, y, width, fmt.Sprintf("%3.0f%%", v.Progress*100), app.theme.Label)
}

func (app *Application) drawRule(y, width int) {
	app.drawString(0, y, width, strings.Repeat("─", width), app.theme.ProgressEmpty)
}

// drawText draws the text with highlights between rows top and bottom.
// Lines longer than the screen are cut.
func (app *Application) drawText(top, bottom, width int, v search.ViewState) {
	kind := highlight.KindMatch
	if v.Streaming {
		kind = highlight.KindLive
	}
	for i, line := range highlight.Lines(highlight.Build(v.Text, v.Highlights, kind)) {
		y := top + i
		if y >= bottom {
			return
		}
		x := 0
		for _, seg := range line {
			x = app.drawString(x, y, width, seg.Text, app.theme.StyleFor(seg.Kind))
		}
	}
}

// drawStatus draws the status line.
func (app *Application) drawStatus(y, width int, v search.ViewState) {
	if y < textTop {
		return
	}
	app.backend.Fill(core.RectFromSize(y, 0, 1, width), core.NewStyledCell(' ', app.theme.Status))

	parts := []string{fmt.Sprintf("%d match(es)", v.Highlights.Len())}
	if r, ok := v.Highlights.Single(); ok {
		parts = append(parts, "at "+app.controller.Engine().OffsetToPoint(r.Start).String())
	}
	parts = append(parts, fmt.Sprintf("%d change(s)", v.Changes))
	if app.showDiff && v.Modified {
		parts = append(parts, app.controller.Engine().Diff().String())
	}
	if app.message != "" {
		parts = append(parts, app.message)
	}
	status := " " + strings.Join(parts, " | ")
	app.drawString(0, y, width, core.Truncate(status, width, "…"), app.theme.Status)
}

// drawString draws s from column x and returns the column after it. Drawing
// stops at width.
func (app *Application) drawString(x, y, width int, s string, style core.Style) int {
	for _, r := range s {
		if r == '\t' {
			r = ' '
		}
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		app.backend.SetCell(x, y, core.NewStyledCell(r, style))
		x += w
	}
	return x
}
