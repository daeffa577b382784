package bitset

// StaticWidths lists the fixed container sizes tried, smallest first,
// before falling back to Var.
var StaticWidths = []int{8, 16, 32, 64, 128, 256}

// New builds the bitset whose native width exactly equals width; width
// must be one of StaticWidths or New falls back to Var(width).
func New(width int, fill FillKind, rnd RandSource) Bitset {
	switch width {
	case 8:
		return NewFixed[uint8](8, fill, rnd)
	case 16:
		return NewFixed[uint16](16, fill, rnd)
	case 32:
		return NewFixed[uint32](32, fill, rnd)
	case 64:
		return NewFixed[uint64](64, fill, rnd)
	case 128, 256:
		return NewWide(width, fill, rnd)
	default:
		return NewVar(width, fill, rnd)
	}
}

// BitK returns the width-wide bitset with only bit k set, dispatching to
// the same concrete representation New(width, ...) would choose.
func BitK(width, k int) Bitset {
	b := New(width, FillZero, nil)
	b.Set(k, true)
	return b
}

// MaskFirstK returns the bitset with the first (most significant) k bits
// set to 1 and all others 0.
func MaskFirstK(width, k int) Bitset {
	b := New(width, FillZero, nil)
	for i := 0; i < k; i++ {
		b.Set(i, true)
	}
	return b
}

// MaskNotLastK returns the bitset with the last k bits set to 0 and all
// others set to 1.
func MaskNotLastK(width, k int) Bitset {
	b := New(width, FillOne, nil)
	for i := width - k; i < width; i++ {
		b.Set(i, false)
	}
	return b
}

// SelectWidth returns the smallest static width that can hold n qubits,
// or n itself (signalling Var) when n exceeds the largest static width.
func SelectWidth(n int) int {
	for _, w := range StaticWidths {
		if n <= w {
			return w
		}
	}
	return n
}
