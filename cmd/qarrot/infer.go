package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	qubitTailPattern = regexp.MustCompile(`:\s*([IXYZixyz]+)\s*$`)
	repeatLinePattern = regexp.MustCompile(`^Repeat\s+\d+\s*$`)
	endLinePattern    = regexp.MustCompile(`^End\s*$`)
)

// inferTxtQubits peeks at the textual format's first statement line
// (skipping one leading Repeat line, since loops may not nest — a second
// Repeat or an End at this point is malformed input) to determine the
// circuit's qubit count from its Pauli-string length. It then hands back
// a reader that replays every byte it consumed ahead of whatever's left
// unread, so the real token source still sees the file from the start.
func inferTxtQubits(r io.Reader) (nQubits int, full io.Reader, err error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var consumed bytes.Buffer

	nextNonBlank := func() (string, error) {
		for {
			line, rerr := br.ReadString('\n')
			consumed.WriteString(line)
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed, nil
			}
			if rerr != nil {
				return "", rerr
			}
		}
	}

	first, err := nextNonBlank()
	if err != nil {
		if err == io.EOF {
			return 0, nil, fmt.Errorf("cmd/qarrot: empty input, cannot infer number of qubits")
		}
		return 0, nil, err
	}

	if repeatLinePattern.MatchString(first) {
		second, err := nextNonBlank()
		if err != nil {
			if err == io.EOF {
				return 0, nil, fmt.Errorf("cmd/qarrot: unexpected end of input while inferring number of qubits")
			}
			return 0, nil, err
		}
		switch {
		case endLinePattern.MatchString(second):
			return 0, nil, fmt.Errorf("cmd/qarrot: empty repeat found at start of input")
		case repeatLinePattern.MatchString(second):
			return 0, nil, fmt.Errorf("cmd/qarrot: nested repeat found at start of input")
		}
		first = second
	}

	m := qubitTailPattern.FindStringSubmatch(first)
	if m == nil {
		return 0, nil, fmt.Errorf("cmd/qarrot: could not infer number of qubits from first statement %q", first)
	}

	return len(m[1]), io.MultiReader(bytes.NewReader(consumed.Bytes()), br), nil
}
