package streaming

import (
	"bytes"
	"io"
	"testing"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/operation"
)

func TestRecordRoundTripMeasurement(t *testing.T) {
	n := 10
	x := basis.Zero(n)
	z := basis.Zero(n)
	x.SetBitTrue(0)
	z.SetBitTrue(0)
	z.SetBitTrue(9)
	op := operation.Measurement(x, z, operation.Negative)

	var buf bytes.Buffer
	if err := WriteOperation(&buf, n, op); err != nil {
		t.Fatalf("WriteOperation: %v", err)
	}
	if buf.Len() != RecordSize(n) {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), RecordSize(n))
	}

	got, err := ReadOperation(&buf, n)
	if err != nil {
		t.Fatalf("ReadOperation: %v", err)
	}
	if !got.IsMeasurement() || got.Phase != operation.Negative {
		t.Fatalf("got = %+v", got)
	}
	if !got.X.Equal(op.X) || !got.Z.Equal(op.Z) {
		t.Fatalf("basis mismatch: got %+v, want %+v", got, op)
	}
}

func TestRecordRoundTripRotation(t *testing.T) {
	n := 17
	x := basis.Zero(n)
	x.SetBitTrue(16)
	op := operation.Rotation(x, basis.Zero(n), operation.MinusPi4)

	var buf bytes.Buffer
	if err := WriteOperation(&buf, n, op); err != nil {
		t.Fatalf("WriteOperation: %v", err)
	}
	got, err := ReadOperation(&buf, n)
	if err != nil {
		t.Fatalf("ReadOperation: %v", err)
	}
	if !got.IsRotation() || got.Angle != operation.MinusPi4 || !got.X.Equal(op.X) {
		t.Fatalf("got = %+v", got)
	}
}

func TestReadOperationEOFAtBoundary(t *testing.T) {
	if _, err := ReadOperation(bytes.NewReader(nil), 4); err != io.EOF {
		t.Fatalf("expected io.EOF on an empty reader, got %v", err)
	}
}

func TestRecordStreamOfMultipleOperations(t *testing.T) {
	n := 5
	ops := []*operation.Operation{
		operation.Rotation(basis.BitK(n, 1), basis.Zero(n), operation.PlusPi8),
		operation.Measurement(basis.Zero(n), basis.BitK(n, 4), operation.Positive),
	}

	var buf bytes.Buffer
	for _, op := range ops {
		if err := WriteOperation(&buf, n, op); err != nil {
			t.Fatalf("WriteOperation: %v", err)
		}
	}

	for i, want := range ops {
		got, err := ReadOperation(&buf, n)
		if err != nil {
			t.Fatalf("ReadOperation %d: %v", i, err)
		}
		if got.Kind != want.Kind || !got.X.Equal(want.X) || !got.Z.Equal(want.Z) {
			t.Fatalf("op %d: got %+v, want %+v", i, got, want)
		}
	}
	if _, err := ReadOperation(&buf, n); err != io.EOF {
		t.Fatalf("expected io.EOF after the last record, got %v", err)
	}
}

func TestReadWriteSwapRoundTrip(t *testing.T) {
	s, err := NewTempReadWriteSwap()
	if err != nil {
		t.Fatalf("NewTempReadWriteSwap: %v", err)
	}
	defer s.Close()

	n := 6
	op := operation.Rotation(basis.BitK(n, 2), basis.Zero(n), operation.PlusPi8)

	if err := WriteOperation(s.Write(), n, op); err != nil {
		t.Fatalf("WriteOperation: %v", err)
	}
	if err := s.Swap(); err != nil {
		t.Fatalf("Swap: %v", err)
	}

	got, err := ReadOperation(s.Read(), n)
	if err != nil {
		t.Fatalf("ReadOperation: %v", err)
	}
	if !got.X.Equal(op.X) {
		t.Fatalf("got = %+v, want %+v", got, op)
	}

	if _, err := ReadOperation(s.Read(), n); err != io.EOF {
		t.Fatalf("expected io.EOF after the single written record, got %v", err)
	}
}
