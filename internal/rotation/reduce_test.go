package rotation

import (
	"testing"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/operation"
)

func basisN(n, which int) *basis.Basis {
	b := basis.Zero(n)
	b.SetBit(which, true)
	return b
}

func TestReduceNone(t *testing.T) {
	var ops []*operation.Operation
	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if len(ops) != 0 || changed {
		t.Fatalf("reducing an empty slice should be a no-op")
	}
}

func TestReduceOne(t *testing.T) {
	b := basisN(5, 2)
	ops := []*operation.Operation{operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8)}
	original := ops[0]

	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if len(ops) != 1 || ops[0] != original || changed {
		t.Fatalf("a single rotation should be left untouched")
	}
}

func TestReduceToIdentity(t *testing.T) {
	b := basisN(5, 2)
	ops := []*operation.Operation{
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi4),
		operation.Rotation(b.Clone(), b.Clone(), operation.MinusPi4),
	}

	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if len(ops) != 0 || !changed {
		t.Fatalf("PlusPi4+MinusPi4 should cancel to nothing")
	}
}

func TestReduceTwoPi8ToPi4(t *testing.T) {
	b := basisN(5, 2)
	ops := []*operation.Operation{
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
	}

	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if len(ops) != 1 || !changed {
		t.Fatalf("two PlusPi8 rotations should combine into one")
	}
	if !ops[0].IsRotation() || ops[0].Angle != operation.PlusPi4 {
		t.Fatalf("combined rotation should be PlusPi4, got %s", ops[0])
	}
}

func TestReduceCannotCombine(t *testing.T) {
	b1 := basisN(5, 2)
	b2 := basisN(5, 3)
	ops := []*operation.Operation{
		operation.Rotation(b1.Clone(), b1.Clone(), operation.PlusPi8),
		operation.Rotation(b2.Clone(), b2.Clone(), operation.MinusPi8),
	}
	op1, op2 := ops[0], ops[1]

	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if len(ops) != 2 || changed || ops[0] != op1 || ops[1] != op2 {
		t.Fatalf("rotations on different Pauli strings must not combine")
	}
}

func TestReduceThreeToTwo(t *testing.T) {
	b := basisN(5, 2)
	b2 := basisN(5, 3)
	ops := []*operation.Operation{
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Rotation(b2.Clone(), b2.Clone(), operation.PlusPi8),
	}
	kept := ops[2]

	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if len(ops) != 2 || !changed {
		t.Fatalf("expected two ops to remain after folding, got %d", len(ops))
	}
	if !ops[0].IsRotation() || ops[0].Angle != operation.PlusPi4 {
		t.Fatalf("first remaining op should be the folded PlusPi4")
	}
	if ops[1] != kept {
		t.Fatalf("unrelated rotation should survive untouched")
	}
}

func TestReduceHalf(t *testing.T) {
	y0 := basisN(8, 0)
	y1 := basisN(8, 1)

	ops := []*operation.Operation{
		// group 1: cancels to nothing
		operation.Rotation(y0.Clone(), y0.Clone(), operation.PlusPi8),
		operation.Rotation(y0.Clone(), y0.Clone(), operation.MinusPi8),
		// non combinable
		operation.Rotation(basisN(8, 2), basisN(8, 2), operation.PlusPi4),
		operation.Rotation(basisN(8, 3), basisN(8, 3), operation.PlusPi4),
		// group 2: combines to pi/2
		operation.Rotation(y1.Clone(), y1.Clone(), operation.PlusPi4),
		operation.Rotation(y1.Clone(), y1.Clone(), operation.PlusPi4),
		// non combinable
		operation.Rotation(basisN(8, 4), basisN(8, 4), operation.Pi2),
		operation.Rotation(basisN(8, 5), basisN(8, 5), operation.MinusPi4),
	}

	var keep []bool
	changed := ReduceRotationsNoOrdering(&ops, &keep)
	if !changed {
		t.Fatalf("expected the half-reducible circuit to change")
	}
	if len(ops) != 5 {
		t.Fatalf("expected 5 operations to remain, got %d", len(ops))
	}
}

func TestReduceSliceMatchesVecSemantics(t *testing.T) {
	b := basisN(5, 2)
	ops := []*operation.Operation{
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
	}

	changed := ReduceRotationsNoOrderingSlice(ops)
	if !changed {
		t.Fatalf("expected slice reduction to report a change")
	}

	live := 0
	for _, o := range ops {
		if !o.IsNop() {
			live++
			if o.Angle != operation.PlusPi4 {
				t.Fatalf("surviving op should be PlusPi4, got %s", o)
			}
		}
	}
	if live != 1 {
		t.Fatalf("expected exactly one live operation, got %d", live)
	}
}

func TestAdjacentFoldsStreamedRotations(t *testing.T) {
	b := basisN(5, 2)
	src := NewSliceSource([]*operation.Operation{
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Rotation(b.Clone(), b.Clone(), operation.MinusPi4),
	})

	out, preCount := Drain(src)
	if preCount != 3 {
		t.Fatalf("PreOpCount should be 3, got %d", preCount)
	}
	if len(out) != 0 {
		t.Fatalf("PlusPi8+PlusPi8+MinusPi4 should fold entirely away, got %d ops", len(out))
	}
}

func TestAdjacentDoesNotFoldAcrossMeasurement(t *testing.T) {
	b := basisN(5, 2)
	src := NewSliceSource([]*operation.Operation{
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
		operation.Measurement(b.Clone(), b.Clone(), operation.Positive),
		operation.Rotation(b.Clone(), b.Clone(), operation.PlusPi8),
	})

	out, _ := Drain(src)
	if len(out) != 3 {
		t.Fatalf("a measurement must block folding across it, got %d ops", len(out))
	}
}
