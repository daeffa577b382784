// Package rotation implements adjacent-rotation folding: combining two
// rotations by the same Pauli string into one rotation (or into nothing),
// either as a one-pass streaming fold over an operation source or as an
// order-independent fixpoint reduction over a slice.
package rotation

import (
	"github.com/hydraresearch/qarrot/internal/operation"
)

type combineKind int

const (
	keepNeither combineKind = iota
	keepFirst
	keepLast
	keepBoth
	combineTo
)

type combineResult struct {
	kind   combineKind
	newOp  *operation.Operation
}

// tryCombineRotations decides what two adjacent rotations fold to. Any
// operation that is not a rotation (a measurement, or a tombstoned Nop)
// forces keepBoth — folding never touches measurements.
func tryCombineRotations(op1, op2 *operation.Operation) combineResult {
	if !op1.IsRotation() || !op2.IsRotation() {
		return combineResult{kind: keepBoth}
	}

	isIdentity1 := op1.IsIdentity()
	isIdentity2 := op2.IsIdentity()

	switch {
	case isIdentity1 && isIdentity2:
		return combineResult{kind: keepNeither}
	case isIdentity1:
		return combineResult{kind: keepLast}
	case isIdentity2:
		return combineResult{kind: keepFirst}
	}

	if !op1.X.Equal(op2.X) || !op1.Z.Equal(op2.Z) {
		return combineResult{kind: keepBoth}
	}

	angle1 := op1.Angle
	angle2 := op2.Angle
	newAngle := int(angle1.Code()) + int(angle2.Code())

	if newAngle == 0 {
		return combineResult{kind: keepNeither}
	}

	// a pi/2 can only combine with another pi/2 (covered above, since the
	// codes sum to zero) or with a -pi/4: there the raw code sum is -2, but
	// the physical result is +pi/4, so the code is flipped to +2. Any other
	// pairing with a pi/2 keeps both operations.
	if (angle1 == operation.Pi2 && angle2 == operation.MinusPi4) ||
		(angle2 == operation.Pi2 && angle1 == operation.MinusPi4) {
		if newAngle == -2 {
			newAngle = 2
		}
	} else if angle1 == operation.Pi2 || angle2 == operation.Pi2 {
		return combineResult{kind: keepBoth}
	}

	if abs(newAngle) == 3 {
		return combineResult{kind: keepBoth}
	}

	if abs(newAngle) == 4 {
		newAngle = 0
	}

	newOp := operation.Rotation(op1.X.Clone(), op1.Z.Clone(), operation.AngleFromCode(int8(newAngle)))
	return combineResult{kind: combineTo, newOp: newOp}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
