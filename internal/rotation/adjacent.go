package rotation

import "github.com/hydraresearch/qarrot/internal/operation"

// Source pulls operations one at a time from wherever the circuit is
// coming from (an in-memory slice, a parser, a streaming decoder). ok is
// false once the source is exhausted.
type Source interface {
	Next() (*operation.Operation, bool)
}

// Step is the three-valued result Adjacent.Next can
// produce on a single call: more input is needed before anything can be
// emitted, a folded operation is ready, or the stream itself is done.
type Step int

const (
	StepMore Step = iota
	StepValue
	StepDone
)

// Adjacent performs a single streaming pass that folds each operation into
// its immediate predecessor when they are adjacent rotations by the same
// Pauli string, exactly as far as one pass can fold — it does not re-scan
// once an operation is emitted, so results depend on there being no
// intervening non-combinable operation between two foldable rotations
// (callers that need order-independent folding want ReduceRotationsNoOrdering
// instead).
type Adjacent struct {
	source       Source
	sourceDone   bool
	current      *operation.Operation
	preOpCount   int
}

// NewAdjacent wraps source in a single-pass adjacent-rotation folder.
func NewAdjacent(source Source) *Adjacent {
	return &Adjacent{source: source}
}

// PreOpCount is the number of operations pulled from the source so far,
// before folding — useful for reporting compression ratio once the whole
// stream has drained.
func (a *Adjacent) PreOpCount() int { return a.preOpCount }

// Next advances the fold by one step. See Step's docs for the three
// possible outcomes.
func (a *Adjacent) Next() (Step, *operation.Operation) {
	if a.sourceDone {
		if a.current != nil {
			ret := a.current
			a.current = nil
			return StepValue, ret
		}
		return StepDone, nil
	}

	next, ok := a.source.Next()
	if !ok {
		a.sourceDone = true
		if a.current != nil {
			ret := a.current
			a.current = nil
			return StepValue, ret
		}
		return StepDone, nil
	}

	a.preOpCount++

	if a.current == nil {
		a.current = next
		return StepMore, nil
	}

	switch res := tryCombineRotations(a.current, next); res.kind {
	case keepNeither:
		a.current = nil
		return StepMore, nil
	case keepFirst:
		return StepMore, nil
	case keepLast:
		a.current = next
		return StepMore, nil
	case keepBoth:
		out := a.current
		a.current = next
		return StepValue, out
	case combineTo:
		a.current = res.newOp
		return StepMore, nil
	default:
		panic("rotation: unreachable combine result")
	}
}

// Drain runs the fold to completion, returning every emitted operation in
// order. Intended for tests and for small in-memory circuits; the
// streaming orchestrator drives Next directly instead.
func Drain(source Source) ([]*operation.Operation, int) {
	a := NewAdjacent(source)
	var out []*operation.Operation
	for {
		step, op := a.Next()
		switch step {
		case StepValue:
			out = append(out, op)
		case StepDone:
			return out, a.PreOpCount()
		}
	}
}

// SliceSource adapts a plain slice to the Source interface.
type SliceSource struct {
	ops []*operation.Operation
	i   int
}

func NewSliceSource(ops []*operation.Operation) *SliceSource {
	return &SliceSource{ops: ops}
}

func (s *SliceSource) Next() (*operation.Operation, bool) {
	if s.i >= len(s.ops) {
		return nil, false
	}
	op := s.ops[s.i]
	s.i++
	return op, true
}
