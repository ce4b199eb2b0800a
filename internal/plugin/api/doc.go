// Package api exposes editor selections to Lua scripts.
//
// Scripts reach the editor through the "ks" module, which is both preloaded
// (local ks = require("ks")) and set as a global:
//
//	ks.sel.count()                  -- number of selections, carets included
//	ks.sel.spans()                  -- { {start=, finish=, text=}, ... }
//	ks.sel.set({ {0, 3}, {8, 11} }) -- replace all selections
//	ks.sel.applicable()             -- true when exactly two are non-empty
//	ks.sel.swap()                   -- swap them; false when not applicable
//
// Offsets are byte offsets. finish is exclusive, and a pair with
// start > finish selects backwards.
//
// # Sandbox
//
// A Runner opens only the base, package, table, string and math libraries.
// dofile, loadfile, load and loadstring are removed, and require resolves
// preloaded modules only. A script's context bounds its run time.
package api
