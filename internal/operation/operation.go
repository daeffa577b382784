// Package operation defines the single instruction type the optimizer
// transforms: a Pauli string (an X/Z basis pair, in the same symplectic
// convention as internal/symplectic.Symplectic) tagged as either a
// measurement (carrying a Phase) or a rotation (carrying an Angle), or as
// Nop — the tombstone left behind when an earlier pass folds an operation
// away without physically removing it from a slice.
package operation

import (
	"fmt"

	"github.com/hydraresearch/qarrot/internal/basis"
)

// Kind discriminates an Operation's payload.
type Kind int

const (
	KindNop Kind = iota
	KindMeasurement
	KindRotation
)

// Operation is one instruction in a circuit: a Pauli string plus the kind
// of action performed on it. Only one of Phase/Angle is meaningful,
// selected by Kind — Nop operations carry no angle or phase at all and
// must never be inspected for either.
type Operation struct {
	X     *basis.Basis
	Z     *basis.Basis
	Kind  Kind
	Phase Phase
	Angle Angle
}

// Pauli names one of the three nontrivial single-qubit Pauli operators by
// its (x,z) bit pair, matching the symplectic convention directly.
type Pauli uint8

const (
	PauliX Pauli = 0b01
	PauliZ Pauli = 0b10
	PauliY Pauli = 0b11
)

func (p Pauli) HasX() bool { return p != PauliZ }
func (p Pauli) HasZ() bool { return p != PauliX }

// PauliBasis constructs the (x,z) basis pair for a single-qubit Pauli
// acting on qubit `qubit` out of n.
func PauliBasis(n, qubit int, p Pauli) (*basis.Basis, *basis.Basis) {
	var x, z *basis.Basis
	if p.HasX() {
		x = basis.BitK(n, qubit)
	} else {
		x = basis.Zero(n)
	}
	if p.HasZ() {
		z = basis.BitK(n, qubit)
	} else {
		z = basis.Zero(n)
	}
	return x, z
}

func Measurement(x, z *basis.Basis, phase Phase) *Operation {
	return &Operation{X: x, Z: z, Kind: KindMeasurement, Phase: phase}
}

func Rotation(x, z *basis.Basis, angle Angle) *Operation {
	return &Operation{X: x, Z: z, Kind: KindRotation, Angle: angle}
}

// PauliAngle constructs a rotation by a single-qubit Pauli operator.
func PauliAngle(p Pauli, angle Angle, n, qubit int) *Operation {
	x, z := PauliBasis(n, qubit, p)
	return Rotation(x, z, angle)
}

func (o *Operation) IsMeasurement() bool { return o.Kind == KindMeasurement }
func (o *Operation) IsRotation() bool    { return o.Kind == KindRotation }
func (o *Operation) IsNop() bool         { return o.Kind == KindNop }

// IsIdentity reports whether the operation's Pauli string is entirely I —
// true for a no-op rotation/measurement, but never true for a Nop (a Nop
// has no meaningful Pauli string to test, and is not the same concept as
// an identity rotation awaiting removal).
func (o *Operation) IsIdentity() bool {
	return o.Kind != KindNop && o.X.Popcount() == 0 && o.Z.Popcount() == 0
}

// SetNop tombstones the operation in place.
func (o *Operation) SetNop() {
	o.Kind = KindNop
}

// CommutesWith reports whether the two operations' Pauli strings commute.
func (o *Operation) CommutesWith(rhs *Operation) bool {
	return (o.Z.And(rhs.X).Popcount()+o.X.And(rhs.Z).Popcount())%2 == 0
}

// CommutesWithLikely is CommutesWith with a fast exit when the two
// strings share no basis at all (by far the common case in a folded
// circuit), avoiding two popcount passes in that case.
func (o *Operation) CommutesWithLikely(rhs *Operation) bool {
	zx := o.Z.And(rhs.X)
	xz := o.X.And(rhs.Z)
	if zx.IsZero() && xz.IsZero() {
		return true
	}
	return (zx.Popcount()+xz.Popcount())%2 == 0
}

func (o *Operation) String() string {
	switch o.Kind {
	case KindMeasurement:
		return fmt.Sprintf("Measurement { x: %s, z: %s, phase: %s }", o.X, o.Z, o.Phase)
	case KindRotation:
		return fmt.Sprintf("Rotation { x: %s, z: %s, angle: %s }", o.X, o.Z, o.Angle)
	default:
		return "Nop"
	}
}

// Rand draws a uniformly random measurement or rotation operation over n
// qubits from src.
func Rand(n int, src interface {
	Intn(int) int
	Bool() bool
}) *Operation {
	x := basis.Rand(n, boolSrc{src})
	z := basis.Rand(n, boolSrc{src})
	if src.Bool() {
		phase := Positive
		if src.Bool() {
			phase = Negative
		}
		return Measurement(x, z, phase)
	}
	return Rotation(x, z, RandAngle(src))
}

type boolSrc struct {
	src interface{ Bool() bool }
}

func (b boolSrc) Bool() bool { return b.src.Bool() }
