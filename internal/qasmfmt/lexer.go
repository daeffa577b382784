// Package qasmfmt is an OpenQASM 2.0 front end covering the single-qreg,
// fixed-gate subset of the language the optimizer needs: a version
// statement, includes, one qubit register declaration, an optional
// classical register declaration (skipped), and a sequence of h/t/tdg/
// s/sdg/x/y/z/cx gate applications, each expanded to one or more Pauli
// rotations over the circuit's symplectic representation.
package qasmfmt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// FixedGate names one of the gates this front end understands.
type FixedGate int

const (
	GateH FixedGate = iota
	GateT
	GateTdg
	GateS
	GateSdg
	GateX
	GateY
	GateZ
	GateCx
)

func fixedGateFromName(name string) (FixedGate, bool) {
	switch name {
	case "h":
		return GateH, true
	case "t":
		return GateT, true
	case "tdg":
		return GateTdg, true
	case "s":
		return GateS, true
	case "sdg":
		return GateSdg, true
	case "x":
		return GateX, true
	case "y":
		return GateY, true
	case "z":
		return GateZ, true
	case "cx":
		return GateCx, true
	default:
		return 0, false
	}
}

// TokenKind discriminates a Token's payload.
type TokenKind int

const (
	TokenVersion TokenKind = iota
	TokenInclude
	TokenQregDecl
	TokenFixedGate
)

// Token is one statement of the OpenQASM subset this package parses.
type Token struct {
	Kind        TokenKind
	VersionMajor int8
	Filename    string
	RegName     string
	RegSize     int
	Gate        FixedGate
	Qubits      []int
}

var (
	versionLine = regexp.MustCompile(`^\s*OPENQASM\s+(\d+)\.(\d+)\s*;\s*$`)
	includeLine = regexp.MustCompile(`^\s*include\s+"(\w+\.\w+)"\s*;\s*$`)
	qregLine    = regexp.MustCompile(`^\s*qreg\s+(\w+)\[(\d+)\]\s*;\s*$`)
	cregLine    = regexp.MustCompile(`^\s*creg\s+(\w+)\[(\d+)\]\s*;\s*$`)
	gateLine    = regexp.MustCompile(`^\s*(\w+)\s+((?:\w+(?:\[\d+\])?)(?:,\s*\w+(?:\[\d+\])?)*)\s*;\s*$`)
	separator   = regexp.MustCompile(`,\s*`)
	qregCapture = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
)

func qubitIndexes(value string) ([]int, error) {
	regs := separator.Split(value, -1)
	idxs := make([]int, 0, len(regs))
	for _, reg := range regs {
		m := qregCapture.FindStringSubmatch(reg)
		if m == nil {
			return nil, fmt.Errorf("could not interpret %q as a qubit register reference", value)
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("invalid qubit index in %q: %w", value, err)
		}
		idxs = append(idxs, idx)
	}
	return idxs, nil
}

// TokenSource lexes an OpenQASM 2.0 source a statement (line) at a time.
type TokenSource struct {
	lines   *bufio.Scanner
	queue   []Token
	lineNum int
}

func NewTokenSource(r io.Reader) *TokenSource {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	return &TokenSource{lines: s}
}

func (t *TokenSource) fillQueue() error {
	for {
		if !t.lines.Scan() {
			if err := t.lines.Err(); err != nil {
				return fmt.Errorf("reading OpenQASM source: %w", err)
			}
			return nil
		}
		t.lineNum++
		line := t.lines.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case versionLine.MatchString(line):
			m := versionLine.FindStringSubmatch(line)
			major, err := strconv.ParseInt(m[1], 10, 8)
			if err != nil {
				return fmt.Errorf("line %d: invalid OPENQASM version: %w", t.lineNum, err)
			}
			t.queue = append(t.queue, Token{Kind: TokenVersion, VersionMajor: int8(major)})

		case includeLine.MatchString(line):
			m := includeLine.FindStringSubmatch(line)
			t.queue = append(t.queue, Token{Kind: TokenInclude, Filename: m[1]})

		case qregLine.MatchString(line):
			m := qregLine.FindStringSubmatch(line)
			size, err := strconv.Atoi(m[2])
			if err != nil {
				return fmt.Errorf("line %d: invalid qreg size: %w", t.lineNum, err)
			}
			t.queue = append(t.queue, Token{Kind: TokenQregDecl, RegName: m[1], RegSize: size})

		case cregLine.MatchString(line):
			// classical registers carry no circuit-level meaning here; skip.
			continue

		case gateLine.MatchString(line):
			m := gateLine.FindStringSubmatch(line)
			gate, ok := fixedGateFromName(m[1])
			if !ok {
				return fmt.Errorf("line %d: unsupported gate %q", t.lineNum, m[1])
			}
			qubits, err := qubitIndexes(m[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", t.lineNum, err)
			}
			t.queue = append(t.queue, Token{Kind: TokenFixedGate, Gate: gate, Qubits: qubits})

		default:
			return fmt.Errorf("line %d: did not recognize %q", t.lineNum, line)
		}

		return nil
	}
}

// Next pops the next token, reading more input as needed. ok is false
// once the source is exhausted.
func (t *TokenSource) Next() (Token, bool, error) {
	if len(t.queue) == 0 {
		if err := t.fillQueue(); err != nil {
			return Token{}, false, err
		}
	}
	if len(t.queue) == 0 {
		return Token{}, false, nil
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	return tok, true, nil
}
