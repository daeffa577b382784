package qasmfmt

import (
	"fmt"
	"log/slog"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/operation"
)

// expandGate appends the Pauli-rotation decomposition of a fixed gate to
// ops. Each decomposition is the standard Clifford+T rewriting of the
// named gate into pi/2, pi/4 and pi/8 Pauli rotations over the circuit's
// n_qubits-wide symplectic representation.
func expandGate(nQubits int, gate FixedGate, qubits []int, ops *[]*operation.Operation) error {
	rot := func(angle operation.Angle, xs, zs []int) {
		x := basis.Zero(nQubits)
		z := basis.Zero(nQubits)
		for _, q := range xs {
			x.SetBitTrue(q)
		}
		for _, q := range zs {
			z.SetBitTrue(q)
		}
		*ops = append(*ops, operation.Rotation(x, z, angle))
	}

	switch gate {
	case GateH:
		if len(qubits) != 1 {
			return fmt.Errorf("h expects 1 qubit, got %d", len(qubits))
		}
		q := qubits[0]
		rot(operation.PlusPi4, nil, []int{q})
		rot(operation.PlusPi4, []int{q}, nil)
		rot(operation.PlusPi4, nil, []int{q})

	case GateT:
		if len(qubits) != 1 {
			return fmt.Errorf("t expects 1 qubit, got %d", len(qubits))
		}
		rot(operation.PlusPi8, nil, []int{qubits[0]})

	case GateTdg:
		if len(qubits) != 1 {
			return fmt.Errorf("tdg expects 1 qubit, got %d", len(qubits))
		}
		rot(operation.MinusPi8, nil, []int{qubits[0]})

	case GateS:
		if len(qubits) != 1 {
			return fmt.Errorf("s expects 1 qubit, got %d", len(qubits))
		}
		rot(operation.PlusPi4, nil, []int{qubits[0]})

	case GateSdg:
		if len(qubits) != 1 {
			return fmt.Errorf("sdg expects 1 qubit, got %d", len(qubits))
		}
		rot(operation.MinusPi4, nil, []int{qubits[0]})

	case GateX:
		if len(qubits) != 1 {
			return fmt.Errorf("x expects 1 qubit, got %d", len(qubits))
		}
		rot(operation.Pi2, []int{qubits[0]}, nil)

	case GateY:
		if len(qubits) != 1 {
			return fmt.Errorf("y expects 1 qubit, got %d", len(qubits))
		}
		q := qubits[0]
		rot(operation.Pi2, []int{q}, []int{q})

	case GateZ:
		if len(qubits) != 1 {
			return fmt.Errorf("z expects 1 qubit, got %d", len(qubits))
		}
		rot(operation.Pi2, nil, []int{qubits[0]})

	case GateCx:
		if len(qubits) != 2 {
			return fmt.Errorf("cx expects 2 qubits, got %d", len(qubits))
		}
		control, target := qubits[0], qubits[1]
		rot(operation.PlusPi4, []int{target}, []int{control})
		rot(operation.MinusPi4, nil, []int{control})
		rot(operation.MinusPi4, []int{target}, nil)

	default:
		return fmt.Errorf("internal error: unhandled gate %v", gate)
	}

	return nil
}

// InstructionReader turns a qasmfmt TokenSource into a stream of
// rotations, expanding every fixed-gate statement in place. Unlike
// textfmt's reader it has no repeat blocks to unroll, so it only needs a
// flat buffer of pending expanded operations.
type InstructionReader struct {
	source  *TokenSource
	nQubits int
	bufSize int
	buf     []*operation.Operation
}

func NewInstructionReader(source *TokenSource, nQubits, bufSize int) *InstructionReader {
	if bufSize < 1 {
		bufSize = 1
	}
	return &InstructionReader{source: source, nQubits: nQubits, bufSize: bufSize}
}

func (r *InstructionReader) fillBuf() error {
	r.buf = r.buf[:0]
	for len(r.buf) < r.bufSize {
		tok, ok, err := r.source.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		switch tok.Kind {
		case TokenVersion:
			return fmt.Errorf("unexpected OPENQASM version statement mid-circuit")
		case TokenInclude:
			slog.Warn("multiple includes found in OpenQASM file; ignoring", "file", tok.Filename)
			continue
		case TokenQregDecl:
			return fmt.Errorf("multiple qreg declarations found; not supported")
		case TokenFixedGate:
			if err := expandGate(r.nQubits, tok.Gate, tok.Qubits, &r.buf); err != nil {
				return fmt.Errorf("expanding gate: %w", err)
			}
		}
	}
	return nil
}

// Next returns the next expanded rotation, or nil, false once exhausted.
func (r *InstructionReader) Next() (*operation.Operation, bool, error) {
	if len(r.buf) == 0 {
		if err := r.fillBuf(); err != nil {
			return nil, false, fmt.Errorf("reading OpenQASM token stream into buffer: %w", err)
		}
	}
	if len(r.buf) == 0 {
		return nil, false, nil
	}
	op := r.buf[0]
	r.buf = r.buf[1:]
	return op, true, nil
}

// ReadHeader consumes the leading OPENQASM version statement, any
// include statements, and the single qreg declaration, returning the
// declared qubit count. Any creg declaration is consumed transparently
// by the lexer and never reaches this layer.
func ReadHeader(source *TokenSource) (qubits int, err error) {
	sawVersion := false
	for {
		tok, ok, err := source.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("unexpected end of file before a qreg declaration")
		}
		switch tok.Kind {
		case TokenVersion:
			sawVersion = true
		case TokenInclude:
			// ignored
		case TokenQregDecl:
			if !sawVersion {
				return 0, fmt.Errorf("missing OPENQASM version declaration")
			}
			return tok.RegSize, nil
		case TokenFixedGate:
			return 0, fmt.Errorf("found an OpenQASM gate before a qreg declaration")
		}
	}
}

// ReadAll drains a full circuit (header plus all gate expansions).
func ReadAll(source *TokenSource, bufSize int) ([]*operation.Operation, int, error) {
	nQubits, err := ReadHeader(source)
	if err != nil {
		return nil, 0, err
	}
	r := NewInstructionReader(source, nQubits, bufSize)
	var out []*operation.Operation
	for {
		op, ok, err := r.Next()
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return out, nQubits, nil
		}
		out = append(out, op)
	}
}
