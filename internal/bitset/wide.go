package bitset

import "math/bits"

// Wide is a bitset backed by a fixed number of 64-bit limbs, limbs[0]
// being most significant. It realizes the 128- and 256-bit static
// widths (2 and 4 limbs respectively).
type Wide struct {
	width int
	limbs []uint64
}

func NewWide(width int, fill FillKind, rnd RandSource) *Wide {
	n := (width + 63) / 64
	w := &Wide{width: width, limbs: make([]uint64, n)}
	switch fill {
	case FillZero:
	case FillOne:
		for i := 0; i < width; i++ {
			w.Set(i, true)
		}
	case FillRandom:
		for i := 0; i < width; i++ {
			if rnd != nil && rnd.Bool() {
				w.Set(i, true)
			}
		}
	}
	return w
}

func BitKWide(width, k int) *Wide {
	w := NewWide(width, FillZero, nil)
	w.Set(k, true)
	return w
}

func (w *Wide) Width() int { return w.width }

func (w *Wide) Clone() Bitset {
	limbs := make([]uint64, len(w.limbs))
	copy(limbs, w.limbs)
	return &Wide{width: w.width, limbs: limbs}
}

// limbBit maps logical bit index i (0 = most significant) to a (limb
// index, bit-within-limb) pair, limb bit also counted from the MSB.
func (w *Wide) limbBit(i int) (int, uint) {
	limb := i / 64
	bit := uint(63 - (i % 64))
	return limb, bit
}

func (w *Wide) Get(i int) bool {
	l, b := w.limbBit(i)
	return w.limbs[l]&(uint64(1)<<b) != 0
}

func (w *Wide) Set(i int, v bool) {
	l, b := w.limbBit(i)
	if v {
		w.limbs[l] |= uint64(1) << b
	} else {
		w.limbs[l] &^= uint64(1) << b
	}
}

func (w *Wide) as(other Bitset) (*Wide, error) {
	o, ok := other.(*Wide)
	if !ok || o.width != w.width {
		return nil, ErrWidthMismatch
	}
	return o, nil
}

func (w *Wide) And(other Bitset) (Bitset, error) { return w.binop(other, func(a, b uint64) uint64 { return a & b }) }
func (w *Wide) Or(other Bitset) (Bitset, error)  { return w.binop(other, func(a, b uint64) uint64 { return a | b }) }
func (w *Wide) Xor(other Bitset) (Bitset, error) { return w.binop(other, func(a, b uint64) uint64 { return a ^ b }) }

func (w *Wide) binop(other Bitset, op func(a, b uint64) uint64) (Bitset, error) {
	o, err := w.as(other)
	if err != nil {
		return nil, err
	}
	out := &Wide{width: w.width, limbs: make([]uint64, len(w.limbs))}
	for i := range w.limbs {
		out.limbs[i] = op(w.limbs[i], o.limbs[i])
	}
	return out, nil
}

func (w *Wide) AndAssign(other Bitset) error { return w.assign(other, func(a, b uint64) uint64 { return a & b }) }
func (w *Wide) OrAssign(other Bitset) error  { return w.assign(other, func(a, b uint64) uint64 { return a | b }) }
func (w *Wide) XorAssign(other Bitset) error { return w.assign(other, func(a, b uint64) uint64 { return a ^ b }) }

func (w *Wide) assign(other Bitset, op func(a, b uint64) uint64) error {
	o, err := w.as(other)
	if err != nil {
		return err
	}
	for i := range w.limbs {
		w.limbs[i] = op(w.limbs[i], o.limbs[i])
	}
	return nil
}

func (w *Wide) Not() Bitset {
	out := &Wide{width: w.width, limbs: make([]uint64, len(w.limbs))}
	for i := range w.limbs {
		out.limbs[i] = ^w.limbs[i]
	}
	// mask off bits beyond the logical width in the last limb
	if rem := w.width % 64; rem != 0 {
		last := len(out.limbs) - 1
		out.limbs[last] &= ^uint64(0) << uint(64-rem)
	}
	return out
}

func (w *Wide) Popcount() int {
	n := 0
	for _, l := range w.limbs {
		n += bits.OnesCount64(l)
	}
	return n
}

func (w *Wide) Parity() bool { return w.Popcount()%2 != 0 }

func (w *Wide) IsZero() bool {
	for _, l := range w.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

func (w *Wide) Compare(other Bitset) int {
	o, err := w.as(other)
	if err != nil {
		panic(err)
	}
	for i := range w.limbs {
		if w.limbs[i] < o.limbs[i] {
			return -1
		}
		if w.limbs[i] > o.limbs[i] {
			return 1
		}
	}
	return 0
}
