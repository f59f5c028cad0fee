// Package search is the controller that turns user intents into engine
// operations.
//
// A Controller owns one engine.Engine (the text being edited) and one
// stream.Controller (the simulated typing of the search pattern). All
// mutation goes through four intents:
//
//   - SetPattern and SetReplacement store text; they never search.
//   - Act commits the replacement when the full pattern matches exactly once
//     in the current text, and otherwise starts (or restarts) a streaming
//     search over the pattern. With an empty pattern it does nothing.
//   - Reset restores the original text, clears both fields, cancels any
//     stream and clears highlights and progress.
//
// View returns the state a front end renders. It is derived on every call
// and never stored. Highlights are byte ranges into View().Text; a front
// end must discard them whenever the text changes.
//
// Each state change is published on the event bus, if one is configured,
// under the topics declared in this package.
package search
