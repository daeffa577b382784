package clifford

import (
	"testing"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/qrand"
	"github.com/hydraresearch/qarrot/internal/symplectic"
)

// TestConjIdentity mirrors the original tableau's cross-check: conjugating
// any signed Pauli string by the identity must return it unchanged.
func TestConjIdentity(t *testing.T) {
	src := qrand.New(1234)

	var rots []*symplectic.Symplectic
	rots = append(rots, &symplectic.Symplectic{Sign: false, X: basis.Zero(8), Z: basis.Zero(8)})
	rots = append(rots, &symplectic.Symplectic{Sign: true, X: basis.One(8), Z: basis.One(8)})

	y := basis.Zero(8)
	y.SetBit(0, true)
	rots = append(rots, &symplectic.Symplectic{Sign: true, X: y, Z: y.Clone()})

	for i := 0; i < 64; i++ {
		rots = append(rots, &symplectic.Symplectic{
			Sign: src.Bool(),
			X:    basis.Rand(8, src),
			Z:    basis.Rand(8, src),
		})
	}

	ident := Identity(8)
	for _, p := range rots {
		res := ident.Conjugate(p.Sign, p.X, p.Z)
		if res.Sign != p.Sign || !res.X.Equal(p.X) || !res.Z.Equal(p.Z) {
			t.Fatalf("identity conjugation changed %s into %s", p, res)
		}
	}
}

// TestBuildPi4DoesNotPanic just exercises from_pi4 over a wide sample of
// random generators, matching the original's "just tests that we don't
// panic" comment.
func TestBuildPi4DoesNotPanic(t *testing.T) {
	src := qrand.New(13579)
	c := Identity(8)
	for i := 0; i < 128; i++ {
		sign := src.Bool()
		x := basis.Rand(8, src)
		z := basis.Rand(8, src)
		c.FromPi4(sign, x, z)
	}
}

func TestMulAssignRightByIdentityIsNoop(t *testing.T) {
	ident := Identity(128)
	src := qrand.New(2468)
	for i := 0; i < 16; i++ {
		sign := src.Bool()
		x := basis.Rand(128, src)
		z := basis.Rand(128, src)

		pi4 := Identity(128)
		pi4.FromPi4(sign, x, z)

		out := pi4.Clone()
		out.MulAssignRight(ident)

		if !out.Equal(pi4) {
			t.Fatalf("multiplying by identity changed the tableau")
		}
	}
}

// TestConjugateFixedTableau mirrors the original's fixed-bitstring debug
// test: a hand-built non-identity 9-qubit tableau conjugating a known
// measurement string must come out with a positive sign.
func TestConjugateFixedTableau(t *testing.T) {
	c := Identity(9)

	type row struct {
		sign byte
		x, z string
	}

	xRows := []row{
		{1, "100000000", "100100000"},
		{0, "000000000", "011011000"},
		{0, "011000000", "011011000"},
		{0, "000011001", "000110100"},
		{1, "010101001", "111001100"},
		{1, "010001001", "011010001"},
		{1, "000100010", "100010010"},
		{1, "000011101", "000000110"},
		{0, "000000000", "000001001"},
	}
	zRows := []row{
		{0, "000000000", "100000000"},
		{0, "010000000", "001011000"},
		{0, "000000000", "001000000"},
		{0, "000111001", "100110100"},
		{0, "000100110", "100000010"},
		{0, "000100110", "100011010"},
		{1, "000000010", "000000100"},
		{0, "000100000", "100010000"},
		{0, "000100111", "100011010"},
	}

	for i, r := range xRows {
		c.xRows[i] = symplectic.FromBitstring(9, r.sign, r.x, r.z)
	}
	for i, r := range zRows {
		c.zRows[i] = symplectic.FromBitstring(9, r.sign, r.x, r.z)
	}

	measurement := symplectic.FromBitstring(9, 1, "000011011", "000001000")
	result := c.Conjugate(measurement.Sign, measurement.X, measurement.Z)

	if result.Sign {
		t.Fatalf("expected positive sign, got negative")
	}
}

func TestSetIdentityAfterMutation(t *testing.T) {
	c := Identity(8)
	src := qrand.New(42)
	c.FromPi4(src.Bool(), basis.Rand(8, src), basis.Rand(8, src))
	c.SetIdentity()

	want := Identity(8)
	if !c.Equal(want) {
		t.Fatalf("SetIdentity did not restore the identity tableau")
	}
}

func TestSetToCopiesRows(t *testing.T) {
	a := Identity(16)
	src := qrand.New(7)
	a.FromPi4(src.Bool(), basis.Rand(16, src), basis.Rand(16, src))

	b := Identity(16)
	b.SetTo(a)

	if !a.Equal(b) {
		t.Fatalf("SetTo did not copy rows faithfully")
	}
}
