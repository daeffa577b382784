// Package invariant provides the single panic helper used throughout the
// optimizer for conditions that indicate a bug in the caller rather than
// bad input — the Go analogue of the original's debug_assert! call sites,
// which the Rust build strips in release mode but which this port keeps
// live (Go has no separate debug/release assert tier).
package invariant

import "fmt"

// Violated panics with a formatted message. Call sites use this for
// internal consistency checks (e.g. a phase-tracking parity that must
// always come out even) that should never fire on valid input; if one
// does, the surrounding algorithm has a bug.
func Violated(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// Check panics with the formatted message if cond is false.
func Check(cond bool, format string, args ...any) {
	if !cond {
		Violated(format, args...)
	}
}
