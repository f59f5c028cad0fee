package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/engine"
	"github.com/dshills/findstorm/internal/engine/match"
	"github.com/dshills/findstorm/internal/event"
	"github.com/dshills/findstorm/internal/event/topic"
	"github.com/dshills/findstorm/internal/logging"
	"github.com/dshills/findstorm/internal/stream"
)

// Outcome is what an Act intent did.
type Outcome uint8

const (
	// OutcomeNoop means there was nothing to search for.
	OutcomeNoop Outcome = iota
	// OutcomeReplaced means the single match was replaced.
	OutcomeReplaced
	// OutcomeStreaming means a streaming search was started.
	OutcomeStreaming
	// OutcomeRejected means the engine refused the replacement.
	OutcomeRejected
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeStreaming:
		return "streaming"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Controller routes intents to the engine and the stream controller.
// All methods are safe for concurrent use; stream ticks are serialised with
// them through the controller's mutex.
type Controller struct {
	mu sync.Mutex

	engine *engine.Engine
	stream *stream.Controller
	bus    event.Bus
	logger *logging.Logger

	clock    stream.Clock
	interval time.Duration

	pattern     string
	replacement string

	highlights match.Set
	progress   float64
	revealed   int
	sessionID  uuid.UUID

	// full caches the full-pattern set for (fullPattern, revision).
	full        match.Set
	fullPattern string
	fullValid   bool
}

// New creates a controller over eng.
func New(eng *engine.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine: eng,
		logger: logging.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("search")

	streamOpts := []stream.Option{
		stream.WithLocker(&c.mu),
		stream.WithHandler(c.handleUpdate),
		stream.WithClock(c.clock),
		stream.WithInterval(c.interval),
	}
	c.stream = stream.NewController(eng, streamOpts...)
	c.highlights = match.Empty(uint64(eng.RevisionID()))
	return c
}

// Engine returns the engine the controller edits.
func (c *Controller) Engine() *engine.Engine {
	return c.engine
}

// SetPattern stores the search pattern. It does not search.
func (c *Controller) SetPattern(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == c.pattern {
		return
	}
	c.pattern = text
	c.publish(TopicPatternChanged, TextPayload{Text: text})
}

// SetReplacement stores the replacement text. It does not search.
func (c *Controller) SetReplacement(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == c.replacement {
		return
	}
	c.replacement = text
	c.publish(TopicReplacementChanged, TextPayload{Text: text})
}

// Act replaces the single match of the pattern, or starts a streaming
// search when the pattern does not match exactly once.
func (c *Controller) Act() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pattern == "" {
		c.logger.Debug("act ignored: empty pattern")
		return OutcomeNoop
	}

	set := c.fullSetLocked()
	if set.Len() == 1 {
		return c.commitLocked(set)
	}
	return c.beginStreamLocked()
}

// Reset restores the original text and clears all search state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelStreamLocked()
	rev := c.engine.Reset()

	c.pattern = ""
	c.replacement = ""
	c.highlights = match.Empty(uint64(rev))
	c.progress = 0
	c.revealed = 0
	c.sessionID = uuid.Nil
	c.fullValid = false

	c.logger.Debug("reset to original snapshot")
	c.publish(TopicReset, nil)
}

// SetTickInterval changes the stream tick interval for future sessions.
func (c *Controller) SetTickInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stream.SetInterval(d)
}

// TickInterval returns the stream tick interval.
func (c *Controller) TickInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream.Interval()
}

// Close cancels any live stream. The controller stays usable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelStreamLocked()
}

// View returns the current view state.
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.engine.Snapshot()
	full := c.fullSetLocked()

	highlights := c.highlights
	// Ranges are never trusted across a buffer mutation.
	if highlights.Revision() != uint64(snap.RevisionID()) || !highlights.Valid(snap.Len()) {
		highlights = match.Empty(uint64(snap.RevisionID()))
	}

	return ViewState{
		Text:             snap.Text(),
		Pattern:          c.pattern,
		Replacement:      c.replacement,
		Highlights:       highlights,
		CanCommitReplace: c.pattern != "" && full.Len() == 1,
		Streaming:        c.stream.IsStreaming(),
		Progress:         c.progress,
		Revealed:         c.revealed,
		SessionID:        c.sessionID,
		Revision:         uint64(snap.RevisionID()),
		Modified:         c.engine.Modified(),
		Changes:          len(c.engine.Changes()),
	}
}

// fullSetLocked returns the full-pattern set on the current revision,
// recomputing it only when the pattern or the text changed.
func (c *Controller) fullSetLocked() match.Set {
	rev := uint64(c.engine.RevisionID())
	if c.fullValid && c.fullPattern == c.pattern && c.full.Revision() == rev {
		return c.full
	}
	c.full = c.engine.Find(c.pattern)
	c.fullPattern = c.pattern
	c.fullValid = true
	return c.full
}

func (c *Controller) commitLocked(set match.Set) Outcome {
	c.cancelStreamLocked()

	res, err := c.engine.Commit(set, c.replacement)
	if err != nil {
		c.logger.WithField("pattern", c.pattern).Debug("replace rejected: %v", err)
		c.publish(TopicReplaceRejected, RejectPayload{Pattern: c.pattern, Err: err})
		return OutcomeRejected
	}

	r, _ := set.Single()
	c.highlights = match.Empty(uint64(res.NewRevision))
	c.progress = 0
	c.revealed = 0
	c.fullValid = false

	c.logger.Debug("replaced %s %q -> %q", r, res.OldText, c.replacement)
	c.publish(TopicReplaceCommitted, CommitPayload{
		Range:    r,
		OldText:  res.OldText,
		NewText:  c.replacement,
		Revision: uint64(res.NewRevision),
	})
	return OutcomeReplaced
}

func (c *Controller) beginStreamLocked() Outcome {
	c.cancelStreamLocked()

	id, ok := c.stream.Begin(c.pattern)
	if !ok {
		return OutcomeNoop
	}
	sess := c.stream.Session()

	c.sessionID = id
	c.highlights = match.Empty(uint64(c.engine.RevisionID()))
	c.progress = 0
	c.revealed = 0

	c.logger.WithField("session", id).Debug("stream started for %q", c.pattern)
	c.publish(TopicStreamStarted, StreamPayload{
		SessionID: id,
		Pattern:   c.pattern,
		Total:     sess.Total(),
	})
	return OutcomeStreaming
}

func (c *Controller) cancelStreamLocked() {
	sess := c.stream.Session()
	if !c.stream.Cancel() {
		return
	}
	c.highlights = match.Empty(uint64(c.engine.RevisionID()))
	c.progress = 0
	c.revealed = 0

	c.logger.WithField("session", sess.ID()).Debug("stream cancelled")
	c.publish(TopicStreamCancelled, StreamPayload{
		SessionID: sess.ID(),
		Pattern:   sess.Pattern(),
		Revealed:  sess.Revealed(),
		Total:     sess.Total(),
		Progress:  sess.Progress(),
	})
}

// handleUpdate runs with c.mu held by the stream controller's tick.
func (c *Controller) handleUpdate(u stream.Update) {
	c.revealed = u.Revealed
	c.progress = u.Progress()

	payload := StreamPayload{
		SessionID: u.SessionID,
		Pattern:   u.Pattern,
		Revealed:  u.Revealed,
		Total:     u.Total,
		Progress:  c.progress,
	}

	if !u.Done {
		c.highlights = u.Live
		payload.Highlights = u.Live
		c.publish(TopicStreamTick, payload)
		return
	}

	c.highlights = u.Final
	if u.Pattern == c.pattern {
		c.full = u.Final
		c.fullPattern = u.Pattern
		c.fullValid = true
	}
	payload.Highlights = u.Final

	c.logger.WithField("session", u.SessionID).Debug("stream completed: %d matches", u.Final.Len())
	c.publish(TopicStreamCompleted, payload)
}

func (c *Controller) publish(t topic.Topic, payload any) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(context.Background(), event.New(t, payload, eventSource)); err != nil {
		c.logger.Warn("publish %s: %v", t, err)
	}
}
