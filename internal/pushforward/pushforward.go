// Package pushforward implements the push-T-forward pass: it walks a
// circuit left to right, accumulating every Clifford rotation (pi/2,
// pi/4) into a running tableau and conjugating every T-gate (+-pi/8) and
// measurement it meets by that accumulator before emitting it, so that by
// the end of the pass all Clifford rotations have been eliminated and
// every remaining operation is a T-gate or measurement pushed as far
// toward the front of the circuit as the commutation structure allows.
package pushforward

import (
	"log/slog"

	"github.com/hydraresearch/qarrot/internal/clifford"
	"github.com/hydraresearch/qarrot/internal/operation"
)

// InPlace runs push-T-forward over circuit, overwriting it with the
// reduced output (Clifford rotations removed, everything else conjugated)
// and returning whether anything changed and how many T-gates were seen.
func InPlace(circuit []*operation.Operation, n int) (changed bool, tGateCount int, out []*operation.Operation) {
	slog.Debug("pushing T gates forward", "length", len(circuit))

	accumulator := clifford.Identity(n)
	cliffordBuf := clifford.Identity(n)

	outIndex := 0
	for _, op := range circuit {
		didChange, wasTGate, newOp := PushAccumulator(accumulator, cliffordBuf, op)
		changed = changed || didChange
		if wasTGate {
			tGateCount++
		}
		if newOp != nil {
			circuit[outIndex] = newOp
			outIndex++
		}
	}
	circuit = circuit[:outIndex]

	slog.Debug("done pushing T gates forward", "t_gates", tGateCount, "new_length", len(circuit))

	return changed, tGateCount, circuit
}

// PushAccumulator folds a single operation into accumulator (for Clifford
// rotations) or conjugates it by accumulator and emits it (for T-gates and
// measurements). It returns whether anything changed, whether the
// operation was a T-gate, and the operation to emit (nil for absorbed
// Clifford rotations).
//
// Clifford absorption always reports changed=true, even when the freshly
// built single-generator Clifford happens to compose to a no-op against
// the running accumulator — the original optimizer does not check for
// that case (computing the composed tableau is already the expensive
// part, and verifying it was a true no-op would cost as much again), so
// this is preserved exactly rather than "corrected" to compare before and
// after.
func PushAccumulator(accumulator, cliffordBuf *clifford.Clifford, op *operation.Operation) (changed, wasTGate bool, emit *operation.Operation) {
	switch op.Kind {
	case operation.KindNop:
		panic("pushforward: nop found while pushing T gates forward")

	case operation.KindMeasurement:
		newSym := accumulator.Conjugate(op.Phase.SignBit(), op.X, op.Z)
		changed = !newSym.X.Equal(op.X) || !newSym.Z.Equal(op.Z) || newSym.Sign != op.Phase.SignBit()
		emit = operation.Measurement(newSym.X, newSym.Z, operation.PhaseFromBool(newSym.Sign))
		return changed, false, emit

	case operation.KindRotation:
		switch op.Angle {
		case operation.PlusPi8, operation.MinusPi8:
			newSym := accumulator.Conjugate(op.Angle.SignBit(), op.X, op.Z)
			changed = !newSym.X.Equal(op.X) || !newSym.Z.Equal(op.Z) || newSym.Sign != op.Angle.SignBit()
			emit = operation.Rotation(newSym.X, newSym.Z, op.Angle.UseSignBit(newSym.Sign))
			return changed, true, emit

		case operation.Pi2:
			cliffordBuf.FromPi2(op.Angle.SignBit(), op.X, op.Z)
			cliffordBuf.MulAssignRight(accumulator)
			accumulator.SetTo(cliffordBuf)
			return true, false, nil

		case operation.PlusPi4, operation.MinusPi4:
			cliffordBuf.FromPi4(op.Angle.SignBit(), op.X, op.Z)
			cliffordBuf.MulAssignRight(accumulator)
			accumulator.SetTo(cliffordBuf)
			return true, false, nil
		}
	}

	panic("pushforward: unreachable operation kind/angle combination")
}
