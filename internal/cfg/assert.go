package cfg

import "fmt"

// assertf panics with a formatted message when cond is false. CFG
// construction's only failure mode is an internal-consistency
// assertion: an instruction classified as neither branch nor return
// terminating a block unexpectedly indicates a bug in the rewriter or
// this package, never a property of user code.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
