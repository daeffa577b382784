package textfmt

import (
	"fmt"
	"io"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/operation"
)

// InstructionReader turns a TokenSource into a stream of Operations,
// unrolling Repeat/End blocks as it goes. It buffers a chunk of
// operations at a time (targetBufSize) rather than allocating one
// Operation per call, except inside a repeat block, where it must hold
// the whole repeated block in memory to replay it.
type InstructionReader struct {
	source          *TokenSource
	nQubits         int
	targetBufSize   int
	shrinkAfterRepeat bool

	buf           []*operation.Operation
	index         int
	repeatsLeft   int
}

func NewInstructionReader(source *TokenSource, nQubits, targetBufSize int, shrinkAfterRepeat bool) *InstructionReader {
	if targetBufSize < 1 {
		targetBufSize = 1
	}
	return &InstructionReader{
		source:            source,
		nQubits:           nQubits,
		targetBufSize:     targetBufSize,
		shrinkAfterRepeat: shrinkAfterRepeat,
		buf:               make([]*operation.Operation, 0, targetBufSize),
	}
}

// readPaulis consumes exactly nQubits Pauli tokens and builds the
// corresponding X/Z basis pair.
func (r *InstructionReader) readPaulis() (*basis.Basis, *basis.Basis, error) {
	x := basis.Zero(r.nQubits)
	z := basis.Zero(r.nQubits)
	for qb := 0; qb < r.nQubits; qb++ {
		tok, ok, err := r.source.Next()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("unexpected EOF (only found %d/%d Paulis)", qb, r.nQubits)
		}
		if tok.Kind != TokenPauli {
			return nil, nil, fmt.Errorf("unexpected token (only found %d/%d Paulis)", qb, r.nQubits)
		}
		if tok.Pauli == PauliX || tok.Pauli == PauliY {
			x.SetBitTrue(qb)
		}
		if tok.Pauli == PauliZ || tok.Pauli == PauliY {
			z.SetBitTrue(qb)
		}
	}
	return x, z, nil
}

func (r *InstructionReader) completeMeasurement(phase operation.Phase) (*operation.Operation, error) {
	x, z, err := r.readPaulis()
	if err != nil {
		return nil, fmt.Errorf("reading measurement: %w", err)
	}
	return operation.Measurement(x, z, phase), nil
}

func (r *InstructionReader) completeRotation(angleCode int8) (*operation.Operation, error) {
	x, z, err := r.readPaulis()
	if err != nil {
		return nil, fmt.Errorf("reading rotation: %w", err)
	}
	return operation.Rotation(x, z, operation.AngleFromCode(angleCode)), nil
}

// readRepeat fills buf with the operations of a single repeat block body
// (consuming the terminating End) and sets repeatsLeft to replay it.
func (r *InstructionReader) readRepeat(count int) error {
	r.repeatsLeft = count - 1
	r.index = 0
	r.buf = r.buf[:0]
	if r.shrinkAfterRepeat && cap(r.buf) > r.targetBufSize {
		r.buf = make([]*operation.Operation, 0, r.targetBufSize)
	}

	for {
		tok, ok, err := r.source.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unexpected end of input while in repeat block")
		}
		if tok.Kind == TokenRepeat {
			return fmt.Errorf("found nested repeat block")
		}
		if tok.Kind == TokenEnd {
			_, _, _ = r.source.Next()
			break
		}
		_, _, _ = r.source.Next()
		op, err := r.completeOne(tok)
		if err != nil {
			return fmt.Errorf("filling repeat block: %w", err)
		}
		r.buf = append(r.buf, op)
	}
	if len(r.buf) == 0 {
		return fmt.Errorf("empty repeat block")
	}
	return nil
}

func (r *InstructionReader) completeOne(tok Token) (*operation.Operation, error) {
	switch tok.Kind {
	case TokenMeasure:
		return r.completeMeasurement(tok.Phase)
	case TokenRotate:
		return r.completeRotation(tok.Angle)
	default:
		return nil, fmt.Errorf("internal error: unexpected token kind %v where an operation was expected", tok.Kind)
	}
}

// readNextChunk fills buf with up to targetBufSize fresh (non-repeat)
// operations, stopping early at a Repeat token (handled next call) or at
// EOF, but always reading the whole block if the very first token
// starts a repeat.
func (r *InstructionReader) readNextChunk() error {
	r.index = 0
	r.buf = r.buf[:0]

	tok, ok, err := r.source.Next()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if r.shrinkAfterRepeat && cap(r.buf) > r.targetBufSize {
		r.buf = make([]*operation.Operation, 0, r.targetBufSize)
	}

	switch tok.Kind {
	case TokenRepeat:
		return r.readRepeat(int(tok.Repeats))
	case TokenEnd:
		return fmt.Errorf("End found while not in repeat")
	case TokenPauli:
		return fmt.Errorf("internal error: Pauli found out of order")
	}

	op, err := r.completeOne(tok)
	if err != nil {
		return fmt.Errorf("filling next chunk: %w", err)
	}
	r.buf = append(r.buf, op)

	for len(r.buf) < r.targetBufSize {
		next, ok, err := r.source.Peek()
		if err != nil {
			return fmt.Errorf("filling parser buffer: %w", err)
		}
		if !ok || next.Kind == TokenRepeat {
			break
		}
		_, _, _ = r.source.Next()
		op, err := r.completeOne(next)
		if err != nil {
			return fmt.Errorf("filling next chunk: %w", err)
		}
		r.buf = append(r.buf, op)
	}

	return nil
}

// Next returns the next Operation in the stream, or nil, io.EOF once
// every token has been consumed.
func (r *InstructionReader) Next() (*operation.Operation, error) {
	if r.index < len(r.buf) {
		op := r.buf[r.index]
		r.index++
		return op, nil
	}

	if r.repeatsLeft > 0 {
		r.repeatsLeft--
		r.index = 1
		return r.buf[0], nil
	}

	if err := r.readNextChunk(); err != nil {
		return nil, fmt.Errorf("fetching next operation: %w", err)
	}
	if len(r.buf) == 0 {
		return nil, io.EOF
	}
	r.index = 1
	return r.buf[0], nil
}

// ReadAll drains the reader into a slice, for callers that don't need
// streaming.
func ReadAll(r *InstructionReader) ([]*operation.Operation, error) {
	var out []*operation.Operation
	for {
		op, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
}
