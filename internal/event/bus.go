package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dshills/findstorm/internal/event/topic"
)

// Handler processes one event.
type Handler func(ctx context.Context, ev Event) error

// Subscription identifies a registered handler.
type Subscription struct {
	id      uint64
	pattern topic.Topic
}

// ID returns the subscription's identifier.
func (s Subscription) ID() uint64 {
	return s.id
}

// Pattern returns the topic pattern the subscription matches.
func (s Subscription) Pattern() topic.Topic {
	return s.pattern
}

// Stats holds delivery counters.
type Stats struct {
	Published uint64
	Delivered uint64
	Dropped   uint64
	Errors    uint64
	Panics    uint64
}

// Bus is the central event bus interface.
type Bus interface {
	// Publish queues ev for ordered delivery on the bus goroutine.
	Publish(ctx context.Context, ev Event) error
	// PublishSync delivers ev on the caller's goroutine.
	PublishSync(ctx context.Context, ev Event) error

	Subscribe(pattern topic.Topic, h Handler) (Subscription, error)
	Unsubscribe(sub Subscription) error

	Start() error
	Stop(ctx context.Context) error

	Stats() Stats
	IsRunning() bool
}

type subscriber struct {
	sub     Subscription
	handler Handler
}

type queued struct {
	ctx context.Context
	ev  Event
}

// bus is the default Bus implementation.
type bus struct {
	mu      sync.RWMutex
	subs    []subscriber
	nextID  uint64
	queue   chan queued
	done    chan struct{}
	running bool

	config busConfig

	published atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
	errors    atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates a stopped event bus.
func NewBus(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &bus{config: config}
}

func (b *bus) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return ErrBusAlreadyRunning
	}
	b.queue = make(chan queued, b.config.queueSize)
	b.done = make(chan struct{})
	b.running = true

	go b.deliverLoop(b.queue, b.done)
	return nil
}

// Stop stops accepting events and waits until queued events are delivered
// or ctx expires.
func (b *bus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return ErrBusNotRunning
	}
	b.running = false
	close(b.queue)
	done := b.done
	b.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ErrShutdownTimeout
	}
}

func (b *bus) IsRunning() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.running
}

func (b *bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() || ev.Topic.IsWildcard() {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.running {
		return ErrBusNotRunning
	}
	select {
	case b.queue <- queued{ctx: ctx, ev: ev}:
		b.published.Add(1)
		return nil
	default:
		b.dropped.Add(1)
		return ErrQueueFull
	}
}

func (b *bus) PublishSync(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() || ev.Topic.IsWildcard() {
		return ErrInvalidTopic
	}
	if !b.IsRunning() {
		return ErrBusNotRunning
	}
	b.published.Add(1)
	b.deliver(ctx, ev)
	return nil
}

func (b *bus) Subscribe(pattern topic.Topic, h Handler) (Subscription, error) {
	if h == nil {
		return Subscription{}, ErrNilHandler
	}
	if !pattern.IsValid() {
		return Subscription{}, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := Subscription{id: b.nextID, pattern: pattern}
	b.subs = append(b.subs, subscriber{sub: sub, handler: h})
	return sub, nil
}

func (b *bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.sub.id == sub.id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

func (b *bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Dropped:   b.dropped.Load(),
		Errors:    b.errors.Load(),
		Panics:    b.panics.Load(),
	}
}

func (b *bus) deliverLoop(queue <-chan queued, done chan<- struct{}) {
	defer close(done)
	for q := range queue {
		b.deliver(q.ctx, q.ev)
	}
}

func (b *bus) deliver(ctx context.Context, ev Event) {
	b.mu.RLock()
	var targets []subscriber
	for _, s := range b.subs {
		if ev.Topic.Matches(s.sub.pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		b.invoke(ctx, s.handler, ev)
	}
}

func (b *bus) invoke(ctx context.Context, h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			if b.config.panicHandler != nil {
				b.config.panicHandler(ev, r)
			}
		}
	}()

	if err := h(ctx, ev); err != nil {
		b.errors.Add(1)
		if b.config.errorHandler != nil {
			b.config.errorHandler(ev, err)
		}
		return
	}
	b.delivered.Add(1)
}
