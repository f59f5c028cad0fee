// Package event provides the in-process event bus that carries engine
// notifications to front ends.
//
// Events are published to dotted topics (see package topic). Subscribers
// register a Handler for a topic pattern. Publish queues the event and a
// single delivery goroutine hands queued events to handlers in publish
// order, so a handler may call back into the publisher without deadlock.
// PublishSync delivers on the caller's goroutine.
//
//	bus := event.NewBus()
//	_ = bus.Start()
//	defer bus.Stop(ctx)
//
//	sub, _ := bus.Subscribe("search.stream.*", func(ctx context.Context, ev event.Event) error {
//	    u := ev.Payload.(StreamPayload)
//	    ...
//	    return nil
//	})
//
// A panicking handler is recovered and reported to the panic handler; other
// handlers still receive the event.
package event
