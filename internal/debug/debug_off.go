//go:build !debug

package debug

// Assert is a no-op in release builds. cond is intentionally unevaluated
// lazily by callers (pass a cheap bool, not a function) since this stub
// still evaluates its argument before discarding it.
func Assert(cond bool, msg string) {}
