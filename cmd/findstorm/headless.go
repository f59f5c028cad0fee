package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dshills/findstorm/internal/engine"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/renderer/highlight"
	"github.com/dshills/findstorm/internal/search"
	"github.com/dshills/findstorm/internal/stream"
)

// headlessOptions configures a non-interactive run.
type headlessOptions struct {
	Pattern     string
	Replacement string
	Acts        int
	Segments    bool
	Interval    time.Duration
	Logger      *logging.Logger
}

// runHeadless applies the act intent opts.Acts times, finishing every
// stream on a manual clock, then writes the final text or its segments
// to w.
func runHeadless(w io.Writer, eng *engine.Engine, opts headlessOptions) error {
	clock := stream.NewManualClock()
	c := search.New(eng,
		search.WithClock(clock),
		search.WithTickInterval(opts.Interval),
		search.WithLogger(opts.Logger),
	)
	defer c.Close()

	c.SetPattern(opts.Pattern)
	c.SetReplacement(opts.Replacement)

	for i := 0; i < opts.Acts; i++ {
		outcome := c.Act()
		opts.Logger.Debug("act %d: %s", i+1, outcome)
		if outcome == search.OutcomeNoop {
			break
		}
		for c.View().Streaming {
			clock.Advance(c.TickInterval())
		}
	}

	v := c.View()
	if !opts.Segments {
		_, err := io.WriteString(w, v.Text)
		return err
	}
	for _, seg := range highlight.Build(v.Text, v.Highlights, highlight.KindMatch) {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%q\n", seg.Kind, seg.Start, seg.End(), seg.Text); err != nil {
			return err
		}
	}
	return nil
}
