// Package basis implements the polymorphic N-qubit bit vector described
// in the data model: a bitset.Bitset of the smallest static width that
// holds N, or the variable-width fallback once N exceeds the largest
// static width. Width dispatch happens once, in New/Select, and every
// caller afterwards programs against the Basis value, not the concrete
// container — the Go rendering of "dispatching once at the entry point."
package basis

import (
	"fmt"

	"github.com/hydraresearch/qarrot/internal/bitset"
)

// Basis is an N-qubit bit vector, N known at construction, backed by a
// bitset.Bitset whose width is the smallest static size that holds N.
type Basis struct {
	N    int
	bits bitset.Bitset
}

// Select returns the container width New would choose for n qubits,
// without constructing one — used by callers that need to pick a single
// representation up front for an entire circuit (the entry-point
// dispatch the data model describes).
func Select(n int) int { return bitset.SelectWidth(n) }

// New constructs a zero/one/random-filled Basis of logical length n.
func New(n int, fill bitset.FillKind, rnd bitset.RandSource) *Basis {
	width := Select(n)
	return &Basis{N: n, bits: bitset.New(width, fill, rnd)}
}

// Zero constructs an all-zero Basis of length n.
func Zero(n int) *Basis { return New(n, bitset.FillZero, nil) }

// One constructs a Basis of length n with every bit set.
func One(n int) *Basis { return New(n, bitset.FillOne, nil) }

// Rand constructs a Basis of length n with bits drawn from rnd.
func Rand(n int, rnd bitset.RandSource) *Basis { return New(n, bitset.FillRandom, rnd) }

// OneBit constructs a Basis of length n with only bit `bit` set.
func OneBit(n, bit int) *Basis {
	if bit >= n {
		panic(fmt.Sprintf("basis: bit %d out of range for length %d", bit, n))
	}
	b := Zero(n)
	b.SetBit(bit, true)
	return b
}

// BitK is an alias for OneBit matching the data model's naming.
func BitK(n, bit int) *Basis { return OneBit(n, bit) }

// WithTrueBits constructs a Basis of length n with every listed bit set.
func WithTrueBits(n int, bits ...int) *Basis {
	b := Zero(n)
	for _, i := range bits {
		b.SetBit(i, true)
	}
	return b
}

func (b *Basis) Clone() *Basis {
	return &Basis{N: b.N, bits: b.bits.Clone()}
}

func (b *Basis) SetZero() {
	b.bits = bitset.New(b.bits.Width(), bitset.FillZero, nil)
}

func (b *Basis) GetBit(i int) bool  { return b.bits.Get(i) }
func (b *Basis) SetBit(i int, v bool) { b.bits.Set(i, v) }
func (b *Basis) SetBitTrue(i int)   { b.bits.Set(i, true) }
func (b *Basis) SetBitFalse(i int)  { b.bits.Set(i, false) }

func (b *Basis) Popcount() int { return b.bits.Popcount() }
func (b *Basis) Parity() bool  { return b.bits.Parity() }
func (b *Basis) IsZero() bool  { return b.bits.IsZero() }

// assertCompatible enforces the "equal logical length" invariant: an
// operation between Bases of unequal N is a programmer error, since
// every call site in this codebase constructs its operands from the
// same circuit's qubit count.
func (b *Basis) assertCompatible(o *Basis) {
	if b.N != o.N {
		panic(fmt.Sprintf("basis: mismatched lengths %d vs %d", b.N, o.N))
	}
}

func (b *Basis) And(o *Basis) *Basis {
	b.assertCompatible(o)
	r, err := b.bits.And(o.bits)
	if err != nil {
		panic(err)
	}
	return &Basis{N: b.N, bits: r}
}

func (b *Basis) Or(o *Basis) *Basis {
	b.assertCompatible(o)
	r, err := b.bits.Or(o.bits)
	if err != nil {
		panic(err)
	}
	return &Basis{N: b.N, bits: r}
}

func (b *Basis) Xor(o *Basis) *Basis {
	b.assertCompatible(o)
	r, err := b.bits.Xor(o.bits)
	if err != nil {
		panic(err)
	}
	return &Basis{N: b.N, bits: r}
}

func (b *Basis) XorAssign(o *Basis) {
	b.assertCompatible(o)
	if err := b.bits.XorAssign(o.bits); err != nil {
		panic(err)
	}
}

func (b *Basis) AndAssign(o *Basis) {
	b.assertCompatible(o)
	if err := b.bits.AndAssign(o.bits); err != nil {
		panic(err)
	}
}

func (b *Basis) OrAssign(o *Basis) {
	b.assertCompatible(o)
	if err := b.bits.OrAssign(o.bits); err != nil {
		panic(err)
	}
}

func (b *Basis) Not() *Basis {
	return &Basis{N: b.N, bits: b.bits.Not()}
}

// Equal compares logical content (ignores which concrete width
// implements the two operands, as long as N matches and contents agree
// on bits 0..N-1).
func (b *Basis) Equal(o *Basis) bool {
	if b.N != o.N {
		return false
	}
	for i := 0; i < b.N; i++ {
		if b.GetBit(i) != o.GetBit(i) {
			return false
		}
	}
	return true
}

// Compare gives a total order consistent with bitset.Bitset.Compare when
// widths agree; for differing concrete widths (which only happens across
// different circuits) it falls back to a bitwise comparison over 0..N-1.
func (b *Basis) Compare(o *Basis) int {
	if b.bits.Width() == o.bits.Width() {
		return b.bits.Compare(o.bits)
	}
	n := b.N
	for i := 0; i < n; i++ {
		bi, oi := b.GetBit(i), o.GetBit(i)
		if bi == oi {
			continue
		}
		if oi {
			return -1
		}
		return 1
	}
	return 0
}

func (b *Basis) String() string {
	buf := make([]byte, b.N)
	for i := 0; i < b.N; i++ {
		if b.GetBit(i) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
