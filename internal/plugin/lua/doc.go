// Package lua runs findstorm scripts on a sandboxed gopher-lua state.
//
// Scripts drive the search controller through the preloaded "findstorm"
// module:
//
//	local fs = require("findstorm")
//	fs.set_pattern("foo")
//	fs.set_replacement("bar")
//	if fs.act() == "streaming" then
//	    fs.finish()
//	end
//	print(fs.view().progress)
//
// Stream ticks are driven by a manual clock: tick(n) advances it by n
// intervals, so a script observes every intermediate state
// deterministically. The sandbox removes dofile, loadfile and load, keeps
// only the base, table, string and math libraries, and whitelists require.
// A context bounds execution time.
package lua
