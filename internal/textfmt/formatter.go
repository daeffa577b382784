package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hydraresearch/qarrot/internal/operation"
)

// Writer is a sink for formatted circuit lines, matching the original's
// three destinations: discard (Void), an in-memory string (StringWriter),
// and a buffered io.Writer (BufferedWriter).
type Writer interface {
	WriteOperation(nQubits int, op *operation.Operation) error
	Flush() error
}

// FormatOperation renders a single Measure/Rotate statement line,
// matching the textual grammar exactly: "Measure +/-: PPPP\n" or
// "Rotate <code>: PPPP\n", where each P is one of IXYZ for that qubit's
// (x,z) basis pair. Never called on a Nop operation.
func FormatOperation(buf *strings.Builder, nQubits int, op *operation.Operation) error {
	buf.Reset()

	switch op.Kind {
	case operation.KindMeasurement:
		buf.WriteString("Measure ")
		if op.Phase == operation.Negative {
			buf.WriteByte('-')
		} else {
			buf.WriteByte('+')
		}
	case operation.KindRotation:
		fmt.Fprintf(buf, "Rotate %d", op.Angle.Code())
	default:
		return fmt.Errorf("textfmt: cannot format a Nop operation")
	}

	buf.WriteString(": ")

	for q := 0; q < nQubits; q++ {
		x := op.X.GetBit(q)
		z := op.Z.GetBit(q)
		switch {
		case !x && !z:
			buf.WriteByte('I')
		case x && !z:
			buf.WriteByte('X')
		case !x && z:
			buf.WriteByte('Z')
		default:
			buf.WriteByte('Y')
		}
	}

	buf.WriteByte('\n')
	return nil
}

// VoidWriter discards every operation; useful for benchmarking the
// optimizer without the cost of formatting output.
type VoidWriter struct{}

func (VoidWriter) WriteOperation(int, *operation.Operation) error { return nil }
func (VoidWriter) Flush() error                                  { return nil }

// StringWriter appends every formatted operation to an in-memory buffer.
type StringWriter struct {
	line strings.Builder
	Out  *strings.Builder
}

func NewStringWriter(out *strings.Builder) *StringWriter {
	return &StringWriter{Out: out}
}

func (w *StringWriter) WriteOperation(nQubits int, op *operation.Operation) error {
	if err := FormatOperation(&w.line, nQubits, op); err != nil {
		return err
	}
	w.Out.WriteString(w.line.String())
	return nil
}

func (w *StringWriter) Flush() error { return nil }

// BufferedWriter formats operations straight into a buffered io.Writer.
type BufferedWriter struct {
	w    *bufio.Writer
	line strings.Builder
}

func NewBufferedWriter(w io.Writer) *BufferedWriter {
	return &BufferedWriter{w: bufio.NewWriter(w)}
}

func (w *BufferedWriter) WriteOperation(nQubits int, op *operation.Operation) error {
	if err := FormatOperation(&w.line, nQubits, op); err != nil {
		return err
	}
	n, err := w.w.WriteString(w.line.String())
	if err != nil {
		return fmt.Errorf("writing operation line: %w", err)
	}
	if n != w.line.Len() {
		panic("textfmt: short write to buffered writer")
	}
	return nil
}

func (w *BufferedWriter) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing buffered writer: %w", err)
	}
	return nil
}
