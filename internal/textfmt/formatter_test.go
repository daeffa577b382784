package textfmt

import (
	"strings"
	"testing"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/operation"
)

func TestFormatMeasurement(t *testing.T) {
	x := basis.Zero(4)
	z := basis.Zero(4)
	x.SetBitTrue(1)
	z.SetBitTrue(1)
	z.SetBitTrue(3)
	op := operation.Measurement(x, z, operation.Positive)

	var buf strings.Builder
	if err := FormatOperation(&buf, 4, op); err != nil {
		t.Fatalf("FormatOperation: %v", err)
	}
	if got, want := buf.String(), "Measure +: IYIZ\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatRotation(t *testing.T) {
	x := basis.Zero(3)
	z := basis.Zero(3)
	x.SetBitTrue(0)
	op := operation.Rotation(x, z, operation.MinusPi4)

	var buf strings.Builder
	if err := FormatOperation(&buf, 3, op); err != nil {
		t.Fatalf("FormatOperation: %v", err)
	}
	if got, want := buf.String(), "Rotate -2: XII\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatRoundTripsThroughParser(t *testing.T) {
	x := basis.Zero(5)
	z := basis.Zero(5)
	x.SetBitTrue(2)
	z.SetBitTrue(2)
	z.SetBitTrue(4)
	op := operation.Rotation(x, z, operation.PlusPi8)

	var buf strings.Builder
	if err := FormatOperation(&buf, 5, op); err != nil {
		t.Fatalf("FormatOperation: %v", err)
	}

	parsed := parseAll(t, buf.String(), 5)
	if len(parsed) != 1 || !parsed[0].X.Equal(op.X) || !parsed[0].Z.Equal(op.Z) || parsed[0].Angle != op.Angle {
		t.Fatalf("round trip mismatch: formatted %q, reparsed %+v", buf.String(), parsed)
	}
}

func TestVoidWriterDiscards(t *testing.T) {
	var w VoidWriter
	x := basis.Zero(2)
	op := operation.Measurement(x, basis.Zero(2), operation.Positive)
	if err := w.WriteOperation(2, op); err != nil {
		t.Fatalf("WriteOperation: %v", err)
	}
}

func TestStringWriterAccumulates(t *testing.T) {
	var out strings.Builder
	w := NewStringWriter(&out)

	x := basis.Zero(2)
	x.SetBitTrue(0)
	op1 := operation.Rotation(x, basis.Zero(2), operation.PlusPi8)
	op2 := operation.Measurement(basis.Zero(2), basis.Zero(2), operation.Negative)

	if err := w.WriteOperation(2, op1); err != nil {
		t.Fatalf("WriteOperation 1: %v", err)
	}
	if err := w.WriteOperation(2, op2); err != nil {
		t.Fatalf("WriteOperation 2: %v", err)
	}

	want := "Rotate 1: XI\nMeasure -: II\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}
