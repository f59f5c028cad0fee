// Package topic defines dotted event topics and wildcard matching.
//
// Topics name what happened, most general segment first:
// "search.stream.tick", "search.replace.committed", "config.reloaded".
// Subscription patterns may use "*" for exactly one segment and "**" for
// any number of segments, so "search.stream.*" receives every stream event
// and "search.**" every search event.
package topic
