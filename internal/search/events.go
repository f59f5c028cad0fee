package search

import (
	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/engine/match"
	"github.com/dshills/findstorm/internal/event/topic"
)

// Topics published by the controller.
const (
	TopicPatternChanged     topic.Topic = "search.pattern.changed"
	TopicReplacementChanged topic.Topic = "search.replacement.changed"
	TopicStreamStarted      topic.Topic = "search.stream.started"
	TopicStreamTick         topic.Topic = "search.stream.tick"
	TopicStreamCompleted    topic.Topic = "search.stream.completed"
	TopicStreamCancelled    topic.Topic = "search.stream.cancelled"
	TopicReplaceCommitted   topic.Topic = "search.replace.committed"
	TopicReplaceRejected    topic.Topic = "search.replace.rejected"
	TopicReset              topic.Topic = "search.reset"

	// TopicAll matches every topic above.
	TopicAll topic.Topic = "search.**"
)

// eventSource is the Source recorded in published event metadata.
const eventSource = "search"

// TextPayload accompanies pattern and replacement changes.
type TextPayload struct {
	Text string
}

// StreamPayload accompanies stream events.
type StreamPayload struct {
	SessionID  uuid.UUID
	Pattern    string
	Revealed   int
	Total      int
	Progress   float64
	Highlights match.Set
}

// CommitPayload accompanies a committed replacement.
type CommitPayload struct {
	Range    match.Range
	OldText  string
	NewText  string
	Revision uint64
}

// RejectPayload accompanies a replacement the engine refused.
type RejectPayload struct {
	Pattern string
	Err     error
}
