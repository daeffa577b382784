// Package qrand provides a deterministic, seedable random bit source built
// on DEDIS Kyber's BLAKE2XB extendable-output stream — the same primitive
// the teacher codebase uses for its quantum-safe commitments, repurposed
// here as a reproducible entropy source for fixture generation and for
// Basis's "random fill" construction (bitset.FillRandom).
//
// This is deliberately NOT the package used for cryptographic seed
// generation in production runs; see internal/attest for that (it reads
// crypto/rand directly). qrand exists so test fixtures can ask for the same
// bit stream twice.
package qrand

import (
	"encoding/binary"
	"math/bits"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/xof/blake2xb"
)

// Source is a reproducible bit generator satisfying internal/bitset's
// RandSource interface.
type Source struct {
	stream kyber.XOF
	buf    byte
	nbits  uint
}

// New builds a Source whose output is fully determined by seed.
func New(seed uint64) *Source {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seed)
	return &Source{stream: blake2xb.New(b)}
}

// NewFromBytes builds a Source seeded directly from an arbitrary byte
// string, for callers that want to derive a reproducible stream from a
// digest rather than an integer seed.
func NewFromBytes(seed []byte) *Source {
	return &Source{stream: blake2xb.New(seed)}
}

// Bool returns one pseudorandom bit, buffering a byte at a time out of the
// underlying XOF stream.
func (s *Source) Bool() bool {
	if s.nbits == 0 {
		var b [1]byte
		if _, err := s.stream.Read(b[:]); err != nil {
			panic(err)
		}
		s.buf = b[0]
		s.nbits = 8
	}
	bit := s.buf&0x80 != 0
	s.buf <<= 1
	s.nbits--
	return bit
}

// Uint64 draws a full 64-bit word from the stream, ignoring the bit
// buffer — used where bulk throughput matters more than sharing state
// with Bool.
func (s *Source) Uint64() uint64 {
	var b [8]byte
	if _, err := s.stream.Read(b[:]); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(b[:])
}

// Intn returns a pseudorandom integer in [0, n), n > 0, via rejection
// sampling against the smallest power-of-two-minus-one mask that covers n.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("qrand: Intn requires n > 0")
	}
	mask := ^uint64(0) >> bits.LeadingZeros64(uint64(n))
	for {
		v := s.Uint64() & mask
		if v < uint64(n) {
			return int(v)
		}
	}
}

// Bytes fills and returns n pseudorandom bytes.
func (s *Source) Bytes(n int) []byte {
	out := make([]byte, n)
	if _, err := s.stream.Read(out); err != nil {
		panic(err)
	}
	return out
}
