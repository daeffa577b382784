package qasmfmt

import (
	"reflect"
	"strings"
	"testing"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	ts := NewTokenSource(strings.NewReader(src))
	var out []Token
	for {
		tok, ok, err := ts.Next()
		if err != nil {
			t.Fatalf("lexing %q: %v", src, err)
		}
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestLexVersion(t *testing.T) {
	toks := allTokens(t, "OPENQASM 2.0;\n")
	if len(toks) != 1 || toks[0].Kind != TokenVersion || toks[0].VersionMajor != 2 {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestLexInclude(t *testing.T) {
	toks := allTokens(t, `include "qelib.inc";`)
	if len(toks) != 1 || toks[0].Kind != TokenInclude || toks[0].Filename != "qelib.inc" {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestLexQreg(t *testing.T) {
	toks := allTokens(t, "qreg asdf[3];")
	if len(toks) != 1 || toks[0].Kind != TokenQregDecl || toks[0].RegName != "asdf" || toks[0].RegSize != 3 {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestLexFixedGate(t *testing.T) {
	toks := allTokens(t, "h q[3];\n")
	if len(toks) != 1 || toks[0].Kind != TokenFixedGate || toks[0].Gate != GateH || !reflect.DeepEqual(toks[0].Qubits, []int{3}) {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestLexMultiQubitGate(t *testing.T) {
	for _, src := range []string{"cx q[3], q[4];\n", "cx q[3], q[4];"} {
		toks := allTokens(t, src)
		if len(toks) != 1 || toks[0].Gate != GateCx || !reflect.DeepEqual(toks[0].Qubits, []int{3, 4}) {
			t.Fatalf("src %q: toks = %+v", src, toks)
		}
	}
}

func TestLexFullFile(t *testing.T) {
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
	toks := allTokens(t, src)
	if len(toks) != 9 {
		t.Fatalf("got %d tokens, want 9: %+v", len(toks), toks)
	}
}
