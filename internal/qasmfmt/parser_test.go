package qasmfmt

import (
	"strings"
	"testing"

	"github.com/hydraresearch/qarrot/internal/operation"
)

func TestReadAllExpandsFullFile(t *testing.T) {
	src := `
	OPENQASM 2.0;
	include "qelib1.inc";
	qreg q[14];
	creg c[14];
	h q[1];
	t q[14];
	t q[12];
	t q[1];
	cx q[12],q[14];
	cx q[1],q[12];
	`

	ts := NewTokenSource(strings.NewReader(src))
	ops, nQubits, err := ReadAll(ts, 32)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if nQubits != 14 {
		t.Fatalf("nQubits = %d, want 14", nQubits)
	}
	// h -> 3 rotations, t*3 -> 3, cx*2 -> 6: 12 total.
	if len(ops) != 12 {
		t.Fatalf("got %d ops, want 12", len(ops))
	}
	for _, op := range ops {
		if !op.IsRotation() {
			t.Fatalf("every expanded OpenQASM gate must become a rotation, got %+v", op)
		}
	}
}

func TestExpandTGate(t *testing.T) {
	var ops []*operation.Operation
	if err := expandGate(4, GateT, []int{2}, &ops); err != nil {
		t.Fatalf("expandGate: %v", err)
	}
	if len(ops) != 1 || ops[0].Angle != operation.PlusPi8 {
		t.Fatalf("ops = %+v", ops)
	}
	if !ops[0].Z.GetBit(2) || ops[0].X.GetBit(2) {
		t.Fatalf("t gate should be a Z rotation on its qubit: %+v", ops[0])
	}
}

func TestExpandCxUsesThreeRotations(t *testing.T) {
	var ops []*operation.Operation
	if err := expandGate(3, GateCx, []int{0, 1}, &ops); err != nil {
		t.Fatalf("expandGate: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}
	for _, op := range ops {
		if !op.IsRotation() || (op.Angle != operation.PlusPi4 && op.Angle != operation.MinusPi4) {
			t.Fatalf("unexpected cx decomposition operation: %+v", op)
		}
	}
}

func TestExpandWrongQubitCountErrors(t *testing.T) {
	var ops []*operation.Operation
	if err := expandGate(2, GateH, []int{0, 1}, &ops); err == nil {
		t.Fatalf("expected an error for h with two qubit args")
	}
}

func TestReadHeaderMissingVersionErrors(t *testing.T) {
	ts := NewTokenSource(strings.NewReader("qreg q[3];\n"))
	if _, err := ReadHeader(ts); err == nil {
		t.Fatalf("expected an error when the version statement is missing")
	}
}

func TestReadHeaderGateBeforeQregErrors(t *testing.T) {
	ts := NewTokenSource(strings.NewReader("OPENQASM 2.0;\nh q[0];\n"))
	if _, err := ReadHeader(ts); err == nil {
		t.Fatalf("expected an error for a gate before the qreg declaration")
	}
}
