package operation

import "fmt"

// Angle is the rotation angle of a Pauli rotation restricted to the set
// the optimizer ever needs to represent: +-pi/8 (T-gates), +-pi/4, and
// pi/2 (which carries no independent sign — see SignBit). The integer
// values match the original encoding exactly (0, +-1, +-2) so conversions
// to/from a stored rotation code are a straight cast.
type Angle int8

const (
	Pi2      Angle = 0
	PlusPi8  Angle = 1
	MinusPi8 Angle = -1
	PlusPi4  Angle = 2
	MinusPi4 Angle = -2
)

// AngleFromCode converts a stored rotation code into an Angle, panicking
// on any value outside {0, +-1, +-2}.
func AngleFromCode(v int8) Angle {
	switch v {
	case 0:
		return Pi2
	case 1:
		return PlusPi8
	case -1:
		return MinusPi8
	case 2:
		return PlusPi4
	case -2:
		return MinusPi4
	default:
		panic(fmt.Sprintf("operation: invalid rotation code %d (must be 0, +/-1, or +/-2)", v))
	}
}

func (a Angle) Code() int8 { return int8(a) }

// SignBit reports the angle's sign bit: false for Pi2/PlusPi8/PlusPi4,
// true for MinusPi8/MinusPi4. Pi2 is conventionally positive.
func (a Angle) SignBit() bool {
	switch a {
	case MinusPi8, MinusPi4:
		return true
	default:
		return false
	}
}

// UseSignBit returns the Angle of the same magnitude as a whose sign bit
// is newSignBit.
func (a Angle) UseSignBit(newSignBit bool) Angle {
	flip := newSignBit != a.SignBit()
	v := a.Code()
	if flip {
		v = -v
	}
	return AngleFromCode(v)
}

func (a Angle) IsPi8() bool {
	return a == PlusPi8 || a == MinusPi8
}

// RandAngle draws an Angle uniformly from {MinusPi4, MinusPi8, Pi2,
// PlusPi8, PlusPi4}.
func RandAngle(src interface{ Intn(int) int }) Angle {
	return AngleFromCode(int8(src.Intn(5) - 2))
}

func (a Angle) Neg() Angle { return AngleFromCode(-a.Code()) }

func (a Angle) String() string {
	switch a {
	case Pi2:
		return "Pi2"
	case PlusPi8:
		return "PlusPi8"
	case MinusPi8:
		return "MinusPi8"
	case PlusPi4:
		return "PlusPi4"
	case MinusPi4:
		return "MinusPi4"
	default:
		return fmt.Sprintf("Angle(%d)", int8(a))
	}
}
