// Package streaming implements the big-file optimizer backend: a fixed
// record-size binary encoding for Operation values and a pair of locked
// alternating tempfiles the optimizer ping-pongs a circuit through one
// pass at a time, so a circuit far larger than memory can still be
// pushed through push-T-forward and partitioning.
//
// The original achieves this with a raw, per-basis-width
// mem::size_of::<Operation<B>> byte-cast — effectively memcpy'ing the
// in-memory struct layout straight to disk. That layout isn't portable
// across Go and Rust (nor, really, guaranteed stable across Rust
// versions or platforms, as the original's own comments note) and Go
// offers no equivalent unsafe struct-to-bytes cast without the same
// fragility; instead this package defines an explicit, deterministic
// record encoding of the same fixed size per qubit count, which gives
// the same "seek to record N" property the original relies on without
// depending on memory layout.
package streaming

import (
	"fmt"
	"io"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/operation"
)

// RecordSize returns the fixed number of bytes one operation occupies on
// disk for a circuit of nQubits qubits: a one-byte kind tag, a one-byte
// phase-or-angle payload, and two packed bit-vectors (X then Z).
func RecordSize(nQubits int) int {
	return 2 + 2*packedLen(nQubits)
}

func packedLen(nQubits int) int {
	return (nQubits + 7) / 8
}

func packBits(b *basis.Basis, nQubits int, out []byte) {
	for i := range out {
		out[i] = 0
	}
	for i := 0; i < nQubits; i++ {
		if b.GetBit(i) {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
}

func unpackBits(nQubits int, data []byte) *basis.Basis {
	b := basis.Zero(nQubits)
	for i := 0; i < nQubits; i++ {
		if data[i/8]&(1<<uint(7-i%8)) != 0 {
			b.SetBitTrue(i)
		}
	}
	return b
}

const (
	kindNop         byte = 0
	kindMeasurement byte = 1
	kindRotation    byte = 2
)

// WriteOperation appends op's fixed-size encoding to w.
func WriteOperation(w io.Writer, nQubits int, op *operation.Operation) error {
	rec := make([]byte, RecordSize(nQubits))

	switch op.Kind {
	case operation.KindNop:
		rec[0] = kindNop
	case operation.KindMeasurement:
		rec[0] = kindMeasurement
		rec[1] = byte(op.Phase)
		packBits(op.X, nQubits, rec[2:2+packedLen(nQubits)])
		packBits(op.Z, nQubits, rec[2+packedLen(nQubits):])
	case operation.KindRotation:
		rec[0] = kindRotation
		rec[1] = byte(op.Angle.Code())
		packBits(op.X, nQubits, rec[2:2+packedLen(nQubits)])
		packBits(op.Z, nQubits, rec[2+packedLen(nQubits):])
	}

	if _, err := w.Write(rec); err != nil {
		return fmt.Errorf("streaming: writing operation record: %w", err)
	}
	return nil
}

// ReadOperation reads one fixed-size record from r. Returns io.EOF (with
// a nil operation) once r is cleanly exhausted at a record boundary.
func ReadOperation(r io.Reader, nQubits int) (*operation.Operation, error) {
	rec := make([]byte, RecordSize(nQubits))
	if _, err := io.ReadFull(r, rec); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("streaming: reading operation record: %w", err)
	}

	switch rec[0] {
	case kindNop:
		op := &operation.Operation{}
		op.SetNop()
		return op, nil
	case kindMeasurement:
		x := unpackBits(nQubits, rec[2:2+packedLen(nQubits)])
		z := unpackBits(nQubits, rec[2+packedLen(nQubits):])
		return operation.Measurement(x, z, operation.Phase(rec[1])), nil
	case kindRotation:
		x := unpackBits(nQubits, rec[2:2+packedLen(nQubits)])
		z := unpackBits(nQubits, rec[2+packedLen(nQubits):])
		return operation.Rotation(x, z, operation.AngleFromCode(int8(rec[1]))), nil
	default:
		return nil, fmt.Errorf("streaming: corrupt record tag %d", rec[0])
	}
}
