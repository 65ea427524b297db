// Package jit is the execution facade spec.md §4.5 describes: given a
// verified module, locate "main" and run it, translating its return
// value into a process exit code. Named jit because this is exactly
// the role an LLVM MCJIT/ORC engine would play in the original
// implementation (original_source/include/tribhasha/JIT.h); this
// module's own internal/ir.Exec stands in for the missing real JIT.
package jit

import (
	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/ir"
)

// Run locates and executes "main" in mod, reporting a Link diagnostic
// through sink on any runtime failure or non-zero exit (spec.md §7).
// Returns main's result as an int, or 1 when main is missing or
// execution fails.
func Run(mod *ir.Module, sink *diag.Sink) int {
	fn, ok := mod.LookupFunction("main")
	if !ok {
		sink.Link(0, "no main function to run")
		return 1
	}

	result, err := ir.Exec(mod, fn, nil)
	if err != nil {
		sink.Link(0, "%s", err.Error())
		return 1
	}

	code := int(result)
	if code != 0 {
		sink.Link(0, "program exited with code %d", code)
	}
	return code
}
