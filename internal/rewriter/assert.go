package rewriter

import "fmt"

// assertf panics with a formatted message when cond is false. It is
// reserved for internal-consistency failures: a malformed extended-
// argument chain or any other shape the source compiler is
// contractually forbidden from producing. It must never fire on a
// well-formed program; tripping it means the compiler (or this
// package) has a bug, not that user code did something wrong — the
// same "this should never happen" idiom the interpreter core uses for
// its own invariant violations.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
