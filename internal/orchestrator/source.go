// Package orchestrator drives the optimizer's main loop: fold the input
// circuit's adjacent rotations in a single streaming pass, then
// repeatedly push T-gates forward through the accumulated Clifford
// tableau and partition the resulting T-gate layer until a full round
// changes nothing. It provides two backends — InMemoryOptimizer, which
// holds the whole circuit in a slice, and FileOptimizer, which streams
// it through a pair of locked swap files for circuits too large to fit
// in memory — behind the common Optimizer interface Run operates on.
package orchestrator

import (
	"io"

	"github.com/hydraresearch/qarrot/internal/operation"
	"github.com/hydraresearch/qarrot/internal/rotation"
	"github.com/hydraresearch/qarrot/internal/streaming"
)

// OperationSource pulls operations with the possibility of failure,
// matching the shape every front end (textfmt, qasmfmt, streaming)
// naturally returns.
type OperationSource interface {
	Next() (*operation.Operation, bool, error)
}

// errSource adapts an OperationSource to rotation.Source (which cannot
// itself fail) by latching the first error and reporting the source as
// exhausted from that point on; the caller checks Err() once iteration
// stops to distinguish a clean end from a failure.
type errSource struct {
	inner OperationSource
	err   error
}

func newErrSource(inner OperationSource) *errSource {
	return &errSource{inner: inner}
}

func (s *errSource) Next() (*operation.Operation, bool) {
	if s.err != nil {
		return nil, false
	}
	op, ok, err := s.inner.Next()
	if err != nil {
		s.err = err
		return nil, false
	}
	return op, ok
}

func (s *errSource) Err() error { return s.err }

var _ rotation.Source = (*errSource)(nil)

// eofReader is the shape of a reader that signals end of input with
// io.EOF rather than a third return value — textfmt.InstructionReader's
// Next() method matches it directly.
type eofReader interface {
	Next() (*operation.Operation, error)
}

// eofSource adapts an eofReader to OperationSource.
type eofSource struct {
	inner eofReader
}

// NewEOFSource wraps a reader that reports exhaustion via io.EOF (such
// as a textfmt.InstructionReader) as an OperationSource.
func NewEOFSource(inner eofReader) OperationSource {
	return &eofSource{inner: inner}
}

func (s *eofSource) Next() (*operation.Operation, bool, error) {
	op, err := s.inner.Next()
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return op, true, nil
}

// streamingSource adapts internal/streaming's record reader, which
// operates on a plain io.Reader rather than holding its own cursor
// state, to OperationSource.
type streamingSource struct {
	r       io.Reader
	nQubits int
}

// NewStreamingSource wraps a fixed-record stream (as written by
// internal/streaming.WriteOperation) as an OperationSource.
func NewStreamingSource(r io.Reader, nQubits int) OperationSource {
	return &streamingSource{r: r, nQubits: nQubits}
}

func (s *streamingSource) Next() (*operation.Operation, bool, error) {
	op, err := streaming.ReadOperation(s.r, s.nQubits)
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return op, true, nil
}
