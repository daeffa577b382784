package bitset

import "math/bits"

// Var is the variable-width bitset fallback used once a circuit's qubit
// count exceeds the largest static width (256). It is a sequence of
// 64-bit limbs (the Go-idiomatic rendering of the spec's 128-bit chunk,
// since math/bits operates natively on 64-bit words — see DESIGN.md)
// with a logical length tracked separately from limb-slice capacity, so
// that two Vars with differing lengths are detected rather than silently
// compared.
type Var struct {
	length int
	limbs  []uint64
}

func NewVar(length int, fill FillKind, rnd RandSource) *Var {
	n := (length + 63) / 64
	v := &Var{length: length, limbs: make([]uint64, n)}
	switch fill {
	case FillZero:
	case FillOne:
		for i := 0; i < length; i++ {
			v.Set(i, true)
		}
	case FillRandom:
		for i := 0; i < length; i++ {
			if rnd != nil && rnd.Bool() {
				v.Set(i, true)
			}
		}
	}
	return v
}

func BitKVar(length, k int) *Var {
	v := NewVar(length, FillZero, nil)
	v.Set(k, true)
	return v
}

func (v *Var) Width() int { return v.length }

func (v *Var) Clone() Bitset {
	limbs := make([]uint64, len(v.limbs))
	copy(limbs, v.limbs)
	return &Var{length: v.length, limbs: limbs}
}

func (v *Var) limbBit(i int) (int, uint) {
	return i / 64, uint(63 - (i % 64))
}

func (v *Var) Get(i int) bool {
	l, b := v.limbBit(i)
	return v.limbs[l]&(uint64(1)<<b) != 0
}

func (v *Var) Set(i int, val bool) {
	l, b := v.limbBit(i)
	if val {
		v.limbs[l] |= uint64(1) << b
	} else {
		v.limbs[l] &^= uint64(1) << b
	}
}

func (v *Var) as(other Bitset) (*Var, error) {
	o, ok := other.(*Var)
	if !ok || o.length != v.length {
		return nil, ErrWidthMismatch
	}
	return o, nil
}

func (v *Var) And(other Bitset) (Bitset, error) { return v.binop(other, func(a, b uint64) uint64 { return a & b }) }
func (v *Var) Or(other Bitset) (Bitset, error)  { return v.binop(other, func(a, b uint64) uint64 { return a | b }) }
func (v *Var) Xor(other Bitset) (Bitset, error) { return v.binop(other, func(a, b uint64) uint64 { return a ^ b }) }

func (v *Var) binop(other Bitset, op func(a, b uint64) uint64) (Bitset, error) {
	o, err := v.as(other)
	if err != nil {
		return nil, err
	}
	out := &Var{length: v.length, limbs: make([]uint64, len(v.limbs))}
	for i := range v.limbs {
		out.limbs[i] = op(v.limbs[i], o.limbs[i])
	}
	return out, nil
}

func (v *Var) AndAssign(other Bitset) error { return v.assign(other, func(a, b uint64) uint64 { return a & b }) }
func (v *Var) OrAssign(other Bitset) error  { return v.assign(other, func(a, b uint64) uint64 { return a | b }) }
func (v *Var) XorAssign(other Bitset) error { return v.assign(other, func(a, b uint64) uint64 { return a ^ b }) }

func (v *Var) assign(other Bitset, op func(a, b uint64) uint64) error {
	o, err := v.as(other)
	if err != nil {
		return err
	}
	for i := range v.limbs {
		v.limbs[i] = op(v.limbs[i], o.limbs[i])
	}
	return nil
}

func (v *Var) Not() Bitset {
	out := &Var{length: v.length, limbs: make([]uint64, len(v.limbs))}
	for i := range v.limbs {
		out.limbs[i] = ^v.limbs[i]
	}
	if rem := v.length % 64; rem != 0 && len(out.limbs) > 0 {
		last := len(out.limbs) - 1
		out.limbs[last] &= ^uint64(0) << uint(64-rem)
	}
	return out
}

func (v *Var) Popcount() int {
	n := 0
	for _, l := range v.limbs {
		n += bits.OnesCount64(l)
	}
	return n
}

func (v *Var) Parity() bool { return v.Popcount()%2 != 0 }

func (v *Var) IsZero() bool {
	for _, l := range v.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

func (v *Var) Compare(other Bitset) int {
	o, err := v.as(other)
	if err != nil {
		panic(err)
	}
	for i := range v.limbs {
		if v.limbs[i] < o.limbs[i] {
			return -1
		}
		if v.limbs[i] > o.limbs[i] {
			return 1
		}
	}
	return 0
}
