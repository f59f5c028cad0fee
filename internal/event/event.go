package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/event/topic"
)

// Event is one notification. Events are immutable once created.
type Event struct {
	// Topic is the hierarchical event name (e.g. "search.stream.tick").
	Topic topic.Topic

	// Payload carries the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with fresh metadata.
func New(t topic.Topic, payload any, source string) Event {
	return Event{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
