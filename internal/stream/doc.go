// Package stream simulates a user typing a search pattern one character at
// a time.
//
// A Session reveals a growing prefix of the pattern. Each Step reveals one
// more rune and searches the text for the prefix; a prefix with exactly one
// hit becomes the live highlight for that step. When the whole pattern is
// revealed the session is done and the final match set is computed against
// the full pattern. That final set is authoritative; the last partial one is
// not.
//
// A Controller drives at most one Session with a Clock, one Step per fixed
// interval:
//
//	c := stream.NewController(eng,
//	    stream.WithInterval(120*time.Millisecond),
//	    stream.WithLocker(&mu),
//	    stream.WithHandler(func(u stream.Update) { ... }),
//	)
//	mu.Lock()
//	c.Begin("pattern")
//	mu.Unlock()
//
// Begin cancels any live session first. Cancel stops the pending tick and
// drops the session; a timer that fires afterwards finds a different (or
// no) live session and does nothing, so a cancelled session never emits
// another Update.
//
// Concurrency:
//
// Controller methods are not synchronised themselves. The owner calls them
// with the Locker held, and every tick acquires the same Locker before it
// touches the session, so intents and ticks never interleave. Handlers run
// with the Locker held and must not block.
package stream
