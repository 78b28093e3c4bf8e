// Package debug provides Assert, a size-parity assertion helper for
// catching façade bugs early without paying for them in release builds.
// No op constructor in this module calls it. Build with `-tags debug` to
// enable; Assert is a no-op otherwise (see debug_off.go).
package debug

// Assert is implemented in debug_on.go / debug_off.go depending on the
// debug build tag.
