package textfmt

import (
	"io"
	"strings"
	"testing"

	"github.com/hydraresearch/qarrot/internal/operation"
)

func parseAll(t *testing.T, src string, nQubits int) []*operation.Operation {
	t.Helper()
	ts := NewTokenSource(strings.NewReader(src))
	r := NewInstructionReader(ts, nQubits, 64, false)
	ops, err := ReadAll(r)
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return ops
}

func TestParseSingleMeasurement(t *testing.T) {
	ops := parseAll(t, "Measure +: IXYZ\n", 4)
	if len(ops) != 1 || !ops[0].IsMeasurement() || ops[0].Phase != operation.Positive {
		t.Fatalf("ops = %+v", ops)
	}
	if ops[0].X.GetBit(1) != true || ops[0].Z.GetBit(1) != false {
		t.Fatalf("qubit 1 (X) basis wrong: %+v", ops[0])
	}
	if ops[0].X.GetBit(3) != false || ops[0].Z.GetBit(3) != true {
		t.Fatalf("qubit 3 (Z) basis wrong: %+v", ops[0])
	}
}

func TestParseRotation(t *testing.T) {
	ops := parseAll(t, "Rotate -1: XZYI\n", 4)
	if len(ops) != 1 || !ops[0].IsRotation() || ops[0].Angle != operation.MinusPi8 {
		t.Fatalf("ops = %+v", ops)
	}
}

func TestParseRepeatUnrollsBlock(t *testing.T) {
	src := "Repeat 3\nRotate 1: X\nEnd\nMeasure +: X\n"
	ops := parseAll(t, src, 1)
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4 (3 unrolled + 1 trailing)", len(ops))
	}
	for i := 0; i < 3; i++ {
		if !ops[i].IsRotation() || ops[i].Angle != operation.PlusPi8 {
			t.Fatalf("op %d = %+v", i, ops[i])
		}
	}
	if !ops[3].IsMeasurement() {
		t.Fatalf("final op should be the trailing measurement, got %+v", ops[3])
	}
}

func TestParseNestedRepeatErrors(t *testing.T) {
	ts := NewTokenSource(strings.NewReader("Repeat 2\nRepeat 3\nRotate 1: X\nEnd\nEnd\n"))
	r := NewInstructionReader(ts, 1, 64, false)
	if _, err := ReadAll(r); err == nil {
		t.Fatalf("expected an error for a nested repeat block")
	}
}

func TestParseEmptyRepeatErrors(t *testing.T) {
	ts := NewTokenSource(strings.NewReader("Repeat 3\nEnd\nMeasure +: X\n"))
	r := NewInstructionReader(ts, 1, 64, false)
	if _, err := ReadAll(r); err == nil {
		t.Fatalf("expected an error for an empty repeat block")
	}
}

func TestParseEmptyRepeatErrorsEvenMidFile(t *testing.T) {
	// a statement following an empty repeat block must still surface the
	// parse error, not be silently dropped as if the file had simply ended.
	ts := NewTokenSource(strings.NewReader("Measure +: X\nRepeat 2\nEnd\nMeasure -: X\n"))
	r := NewInstructionReader(ts, 1, 64, false)
	ops, err := ReadAll(r)
	if err == nil {
		t.Fatalf("expected an error, got ops = %+v", ops)
	}
}

func TestParseStreamsOneAtATime(t *testing.T) {
	ts := NewTokenSource(strings.NewReader("Measure +: X\nMeasure -: X\n"))
	r := NewInstructionReader(ts, 1, 1, false)

	op1, err := r.Next()
	if err != nil || !op1.IsMeasurement() || op1.Phase != operation.Positive {
		t.Fatalf("op1 = %+v, err = %v", op1, err)
	}
	op2, err := r.Next()
	if err != nil || !op2.IsMeasurement() || op2.Phase != operation.Negative {
		t.Fatalf("op2 = %+v, err = %v", op2, err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
