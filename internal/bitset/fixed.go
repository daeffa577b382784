package bitset

import "math/bits"

// unsigned is the set of primitive widths realized directly as a Go
// integer: 8, 16, 32, and 64 bits.
type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Fixed is a bitset backed directly by one of Go's unsigned integer
// types. width is redundant with T's bit size but kept explicit so the
// same generic type can report it without per-instantiation reflection.
type Fixed[T unsigned] struct {
	width int
	v     T
}

func NewFixed[T unsigned](width int, fill FillKind, rnd RandSource) *Fixed[T] {
	f := &Fixed[T]{width: width}
	switch fill {
	case FillZero:
	case FillOne:
		f.v = ^T(0) >> (bitsOf(f.v) - width)
	case FillRandom:
		for i := 0; i < width; i++ {
			if rnd != nil && rnd.Bool() {
				f.Set(i, true)
			}
		}
	}
	return f
}

func bitsOf[T unsigned](v T) int {
	switch any(v).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	default:
		return 64
	}
}

func (f *Fixed[T]) Width() int { return f.width }

func (f *Fixed[T]) Clone() Bitset {
	c := *f
	return &c
}

func (f *Fixed[T]) nativeBits() int { return bitsOf(f.v) }

// BitKFixed returns the value with only bit k (0 = most significant of the
// logical width) set.
func BitKFixed[T unsigned](width, k int) *Fixed[T] {
	f := &Fixed[T]{width: width}
	shift := f.nativeBits() - width + k
	f.v = T(1) << uint(f.nativeBits()-1-shift)
	return f
}

func (f *Fixed[T]) bitShift(i int) uint {
	return uint(f.nativeBits() - f.width + (f.width - 1 - i))
}

func (f *Fixed[T]) Get(i int) bool {
	return f.v&(T(1)<<f.bitShift(i)) != 0
}

func (f *Fixed[T]) Set(i int, v bool) {
	mask := T(1) << f.bitShift(i)
	if v {
		f.v |= mask
	} else {
		f.v &^= mask
	}
}

func (f *Fixed[T]) asT(other Bitset) (T, error) {
	o, ok := other.(*Fixed[T])
	if !ok || o.width != f.width {
		return 0, ErrWidthMismatch
	}
	return o.v, nil
}

func (f *Fixed[T]) And(other Bitset) (Bitset, error) {
	o, err := f.asT(other)
	if err != nil {
		return nil, err
	}
	return &Fixed[T]{width: f.width, v: f.v & o}, nil
}

func (f *Fixed[T]) Or(other Bitset) (Bitset, error) {
	o, err := f.asT(other)
	if err != nil {
		return nil, err
	}
	return &Fixed[T]{width: f.width, v: f.v | o}, nil
}

func (f *Fixed[T]) Xor(other Bitset) (Bitset, error) {
	o, err := f.asT(other)
	if err != nil {
		return nil, err
	}
	return &Fixed[T]{width: f.width, v: f.v ^ o}, nil
}

func (f *Fixed[T]) AndAssign(other Bitset) error {
	o, err := f.asT(other)
	if err != nil {
		return err
	}
	f.v &= o
	return nil
}

func (f *Fixed[T]) OrAssign(other Bitset) error {
	o, err := f.asT(other)
	if err != nil {
		return err
	}
	f.v |= o
	return nil
}

func (f *Fixed[T]) XorAssign(other Bitset) error {
	o, err := f.asT(other)
	if err != nil {
		return err
	}
	f.v ^= o
	return nil
}

func (f *Fixed[T]) Not() Bitset {
	mask := T(0)
	if f.width > 0 {
		mask = ^T(0) >> uint(f.nativeBits()-f.width)
	}
	return &Fixed[T]{width: f.width, v: (^f.v) & mask}
}

func (f *Fixed[T]) Popcount() int {
	switch v := any(f.v).(type) {
	case uint8:
		return bits.OnesCount8(v)
	case uint16:
		return bits.OnesCount16(v)
	case uint32:
		return bits.OnesCount32(v)
	default:
		return bits.OnesCount64(uint64(any(f.v).(uint64)))
	}
}

func (f *Fixed[T]) Parity() bool { return f.Popcount()%2 != 0 }

func (f *Fixed[T]) IsZero() bool { return f.v == 0 }

func (f *Fixed[T]) Compare(other Bitset) int {
	o, err := f.asT(other)
	if err != nil {
		panic(err)
	}
	switch {
	case f.v < o:
		return -1
	case f.v > o:
		return 1
	default:
		return 0
	}
}
