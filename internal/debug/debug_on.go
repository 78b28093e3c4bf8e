//go:build debug

package debug

import "fmt"

// Assert panics if cond is false. Reserved for invariants the façade's
// shape/axis checks already make unreachable in correct callers — a debug
// assertion catching one of these indicates a bug in the façade itself,
// not in caller input.
func Assert(cond bool, msg string) {
	if !cond {
		panic(fmt.Sprintf("tensorgraph: assertion failed: %s", msg))
	}
}
