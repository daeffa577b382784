// Package symplectic implements the signed symplectic representation of a
// single Pauli string: a sign bit plus an X-basis and Z-basis bit vector,
// one bit pair per qubit. This is the unit the tableau in internal/clifford
// is built from.
package symplectic

import (
	"fmt"
	"strings"

	"github.com/hydraresearch/qarrot/internal/basis"
)

// Symplectic is a single signed Pauli string over n qubits: bit i of x and
// z together select I/X/Z/Y on qubit i (x=1,z=0 -> X; x=0,z=1 -> Z; x=1,z=1
// -> Y, up to the global phase tracked separately by Sign).
type Symplectic struct {
	Sign bool
	X    *basis.Basis
	Z    *basis.Basis
}

// Zero returns the identity string (all-I, positive sign) over n qubits.
func Zero(n int) *Symplectic {
	return &Symplectic{Sign: false, X: basis.Zero(n), Z: basis.Zero(n)}
}

func (s *Symplectic) SetZero() {
	s.Sign = false
	s.X.SetZero()
	s.Z.SetZero()
}

// FromIndexes builds a Symplectic over n qubits whose X and Z basis bits are
// set exactly at the listed indices.
func FromIndexes(n int, sign bool, xi, zi []int) *Symplectic {
	x := basis.Zero(n)
	z := basis.Zero(n)
	for _, i := range xi {
		x.SetBitTrue(i)
	}
	for _, i := range zi {
		z.SetBitTrue(i)
	}
	return &Symplectic{Sign: sign, X: x, Z: z}
}

// FromBitstring builds a Symplectic over n qubits from '0'/'1' strings for
// the X and Z rows and a nonzero sign byte for a negative sign.
func FromBitstring(n int, sign byte, x, z string) *Symplectic {
	s := Zero(n)
	s.Sign = sign > 0
	for i := 0; i < n; i++ {
		if x[i] == '1' {
			s.X.SetBitTrue(i)
		}
		if z[i] == '1' {
			s.Z.SetBitTrue(i)
		}
	}
	return s
}

func (s *Symplectic) Clone() *Symplectic {
	return &Symplectic{Sign: s.Sign, X: s.X.Clone(), Z: s.Z.Clone()}
}

// CountI is the number of qubits on which this string acts as Y (x=1,z=1);
// the push-T-forward phase arithmetic calls this "count_i" after the role it
// plays in the multiplication phase formula below.
func (s *Symplectic) CountI() int {
	return s.X.And(s.Z).Popcount()
}

// CommutesWith reports whether s and rhs commute: true iff the number of
// qubits where exactly one of (s.z & rhs.x) or (s.x & rhs.z) holds is even.
func (s *Symplectic) CommutesWith(rhs *Symplectic) bool {
	return (s.Z.And(rhs.X).Popcount()+s.X.And(rhs.Z).Popcount())%2 == 0
}

// XorAssign XORs s's sign/x/z rows with rhs's in place, with no phase
// bookkeeping — the mechanical half of MulBy, split out because the tableau
// conjugation step needs the plain XOR without paying for count_i twice.
func (s *Symplectic) XorAssign(rhs *Symplectic) {
	s.Sign = s.Sign != rhs.Sign
	s.X.XorAssign(rhs.X)
	s.Z.XorAssign(rhs.Z)
}

// MulBy multiplies s by rhs in place, assuming the two strings anticommute
// (the caller is expected to have already checked CommutesWith); the result
// overwrites s. The phase tracking follows the commutator formula: start
// from the shared-Y-count of each operand, XOR the symplectic rows, then
// correct sign by the parity of (p_i+q_i+1-count_i(result))/2, further
// corrected by the cross term theta_c = |x_z & z_x| + |x_x & z_z & x_z &
// z_x| mod 2.
func (s *Symplectic) MulBy(rhs *Symplectic) {
	pI := s.CountI()
	qI := rhs.CountI()

	zx := s.Z.And(rhs.X)
	thetaC := (zx.Popcount()+rhs.X.And(s.Z).And(rhs.Z).And(s.X).Popcount())%2 != 0

	s.XorAssign(rhs)

	phaseSum := pI + qI + 1 - s.CountI()
	if phaseSum < 0 {
		phaseSum = -phaseSum
	}
	if phaseSum%2 != 0 {
		panic(fmt.Sprintf("symplectic: phase_sum %d not even", phaseSum))
	}
	phaseSum /= 2

	s.Sign = s.Sign != (phaseSum != 0)
	s.Sign = s.Sign != thetaC
}

// Mul returns s*rhs without mutating s, assuming anticommutation as MulBy
// does.
func (s *Symplectic) Mul(rhs *Symplectic) *Symplectic {
	out := s.Clone()
	out.MulBy(rhs)
	return out
}

func (s *Symplectic) Equal(o *Symplectic) bool {
	return s.Sign == o.Sign && s.X.Equal(o.X) && s.Z.Equal(o.Z)
}

func (s *Symplectic) String() string {
	var b strings.Builder
	sign := 0
	if s.Sign {
		sign = 1
	}
	fmt.Fprintf(&b, "Symplectic { %d | 0b%s | 0b%s }", sign, s.X.String(), s.Z.String())
	return b.String()
}
