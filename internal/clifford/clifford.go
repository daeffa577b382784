// Package clifford implements the Clifford tableau: the conjugation action
// of a Clifford unitary on the 2N generators X_1..X_N, Z_1..Z_N, tracked as
// two rows of signed Pauli strings (internal/symplectic.Symplectic). Any
// Pauli string is conjugated by XORing together the rows selected by its
// set bits and reconciling the accumulated phase.
package clifford

import (
	"fmt"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/symplectic"
)

// Clifford is a tableau over n qubits: x_rows[i] is C X_i C^-1, z_rows[i] is
// C Z_i C^-1.
type Clifford struct {
	n      int
	xRows  []*symplectic.Symplectic
	zRows  []*symplectic.Symplectic
}

// Identity returns the tableau for the identity Clifford over n qubits.
func Identity(n int) *Clifford {
	c := &Clifford{n: n, xRows: make([]*symplectic.Symplectic, n), zRows: make([]*symplectic.Symplectic, n)}
	for i := 0; i < n; i++ {
		x := symplectic.Zero(n)
		x.X.SetBitTrue(i)
		z := symplectic.Zero(n)
		z.Z.SetBitTrue(i)
		c.xRows[i] = x
		c.zRows[i] = z
	}
	return c
}

func (c *Clifford) N() int { return c.n }

// SetIdentity resets the tableau to the identity in place.
func (c *Clifford) SetIdentity() {
	for i, row := range c.xRows {
		row.SetZero()
		row.X.SetBitTrue(i)
	}
	for i, row := range c.zRows {
		row.SetZero()
		row.Z.SetBitTrue(i)
	}
}

// SetTo copies other's rows into c; both tableaus must have the same n.
func (c *Clifford) SetTo(other *Clifford) {
	if c.n != other.n {
		panic(fmt.Sprintf("clifford: mismatched qubit counts %d vs %d", c.n, other.n))
	}
	for i := range c.xRows {
		c.xRows[i] = other.xRows[i].Clone()
	}
	for i := range c.zRows {
		c.zRows[i] = other.zRows[i].Clone()
	}
}

func (c *Clifford) Clone() *Clifford {
	out := &Clifford{n: c.n, xRows: make([]*symplectic.Symplectic, c.n), zRows: make([]*symplectic.Symplectic, c.n)}
	for i := range c.xRows {
		out.xRows[i] = c.xRows[i].Clone()
	}
	for i := range c.zRows {
		out.zRows[i] = c.zRows[i].Clone()
	}
	return out
}

// conj XORs together every row of `rows` selected by a set bit of old,
// returning the resulting string and the running count of shared-Y
// crossings accumulated along the way (i_count in the original phase
// derivation) — a quantity conjugate needs twice, once for the X half and
// once for the Z half of the input string.
func conj(rows []*symplectic.Symplectic, n int, old *basis.Basis) (*symplectic.Symplectic, int) {
	ans := symplectic.Zero(n)
	iCount := 0

	for i := 0; i < n; i++ {
		if !old.GetBit(i) {
			continue
		}
		xorWith := rows[i]
		iCount += xorWith.X.And(xorWith.Z).Popcount()
		nCommutations := ans.Z.And(xorWith.X).Popcount()
		iCount += 2 * nCommutations
		ans.XorAssign(xorWith)
	}

	return ans, iCount
}

// Conjugate computes C * (sign,x,z) * C^-1 as a Symplectic, without
// constructing an explicit product Clifford.
func (c *Clifford) Conjugate(sign bool, x, z *basis.Basis) *symplectic.Symplectic {
	nII := x.And(z).Popcount()

	newX, newXI := conj(c.xRows, c.n, x)
	newZ, newZI := conj(c.zRows, c.n, z)

	thetaC := (newX.Z.And(newZ.X).Popcount())%2 != 0
	nIM := newXI + newZI

	newX.XorAssign(newZ)
	result := newX

	nIF := result.CountI()
	nDiff := nII + nIM - nIF
	if nDiff < 0 {
		nDiff = -nDiff
	}
	if nDiff%2 != 0 {
		panic(fmt.Sprintf("clifford: n_diff %d not even", nDiff))
	}
	thetaI := (nDiff/2)%2 != 0

	result.Sign = result.Sign != thetaC
	result.Sign = result.Sign != thetaI
	result.Sign = result.Sign != sign

	return result
}

// ConjugateSymplectic is a convenience wrapper over Conjugate for callers
// that already hold a Symplectic.
func (c *Clifford) ConjugateSymplectic(p *symplectic.Symplectic) *symplectic.Symplectic {
	return c.Conjugate(p.Sign, p.X, p.Z)
}

// FromPi4 resets c to the identity, then applies the pi/4 rotation
// generated by the given signed Pauli string: every generator row that
// anticommutes with the input is replaced by input*row (input on the
// left, matching the original derivation's ordering exactly — MulBy's
// phase formula is not symmetric in its operands).
func (c *Clifford) FromPi4(sign bool, x, z *basis.Basis) {
	c.SetIdentity()
	input := &symplectic.Symplectic{Sign: sign, X: x.Clone(), Z: z.Clone()}

	for i, row := range c.xRows {
		if !row.CommutesWith(input) {
			c.xRows[i] = input.Mul(row)
		}
	}
	for i, row := range c.zRows {
		if !row.CommutesWith(input) {
			c.zRows[i] = input.Mul(row)
		}
	}
}

// FromPi2 resets c to the identity, then applies the pi/2 rotation
// generated by the given signed Pauli string: every anticommuting row just
// flips sign, since a pi/2 rotation by a Pauli string is itself (up to
// phase) a Pauli operator and conjugation by it never mixes generators.
func (c *Clifford) FromPi2(sign bool, x, z *basis.Basis) {
	c.SetIdentity()
	input := &symplectic.Symplectic{Sign: sign, X: x.Clone(), Z: z.Clone()}

	for _, row := range c.xRows {
		if !row.CommutesWith(input) {
			row.Sign = true
		}
	}
	for _, row := range c.zRows {
		if !row.CommutesWith(input) {
			row.Sign = true
		}
	}
}

// MulAssignRight sets c := rhs ∘ c, i.e. replaces every row of c with its
// conjugation under rhs — the tableau composition used by the push-T-forward
// accumulator to fold a newly absorbed Clifford into the running product.
func (c *Clifford) MulAssignRight(rhs *Clifford) {
	for i, row := range c.xRows {
		c.xRows[i] = rhs.Conjugate(row.Sign, row.X, row.Z)
	}
	for i, row := range c.zRows {
		c.zRows[i] = rhs.Conjugate(row.Sign, row.X, row.Z)
	}
}

func (c *Clifford) Equal(o *Clifford) bool {
	if c.n != o.n {
		return false
	}
	for i := range c.xRows {
		if !c.xRows[i].Equal(o.xRows[i]) {
			return false
		}
	}
	for i := range c.zRows {
		if !c.zRows[i].Equal(o.zRows[i]) {
			return false
		}
	}
	return true
}
