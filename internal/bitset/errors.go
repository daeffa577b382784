package bitset

import "errors"

// ErrWidthMismatch is returned by any binary operation between bitsets
// that do not report the same Width (or, for variable-width bitsets,
// the same logical length). Per the data model's invariant, combining
// mismatched bitsets is undefined and must signal an error rather than
// silently truncating or panicking.
var ErrWidthMismatch = errors.New("bitset: operands have mismatched width")
