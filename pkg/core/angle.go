// pkg/core/angle.go
package core

import (
	"fmt"
	"math"
)

const (
	// RadToDeg converts radians to degrees.
	RadToDeg = 180 / math.Pi
	// DegToRad converts degrees to radians.
	DegToRad = math.Pi / 180

	twoPi = 2 * math.Pi

	// past this many turns Normalized reduces with math.Remainder first
	maxStepTurns = 64
)

// Angle is a rotation in radians. The value is unbounded until Normalized is called.
//
// Heading convention: 0 is north (+Z), angles grow clockwise, 90 degrees is east (+X).
// Comparisons with == are exact; use AlmostEqual for tolerant checks.
type Angle struct {
	Rad float64 `json:"rad"`
}

// Radians builds an angle from radians.
func Radians(rad float64) Angle {
	return Angle{Rad: rad}
}

// Degrees builds an angle from degrees.
func Degrees(deg float64) Angle {
	return Angle{Rad: deg * DegToRad}
}

// Deg returns the angle in degrees.
func (a Angle) Deg() float64 {
	return a.Rad * RadToDeg
}

func (a Angle) Add(b Angle) Angle { return Angle{Rad: a.Rad + b.Rad} }
func (a Angle) Sub(b Angle) Angle { return Angle{Rad: a.Rad - b.Rad} }
func (a Angle) Neg() Angle { return Angle{Rad: -a.Rad} }
func (a Angle) Scale(f float64) Angle { return Angle{Rad: a.Rad * f} }
func (a Angle) Abs() Angle { return Angle{Rad: math.Abs(a.Rad)} }
func (a Angle) Sin() float64 { return math.Sin(a.Rad) }
func (a Angle) Cos() float64 { return math.Cos(a.Rad) }
func (a Angle) Tan() float64 { return math.Tan(a.Rad) }

func Atan2(y, x float64) Angle { return Angle{Rad: math.Atan2(y, x)} }
func Asin(x float64) Angle { return Angle{Rad: math.Asin(x)} }
func Acos(x float64) Angle { return Angle{Rad: math.Acos(x)} }

// IsNaN reports whether the angle is undefined, e.g. from Asin(2).
func (a Angle) IsNaN() bool {
	return math.IsNaN(a.Rad)
}

// AlmostEqual compares raw radian values within eps. It does not normalize.
func (a Angle) AlmostEqual(b Angle, eps float64) bool {
	return math.Abs(a.Rad-b.Rad) <= eps
}

func (a Angle) String() string {
	return fmt.Sprintf("%.3f°", a.Deg())
}

// Normalized maps the angle into (-pi, pi].
// Values within a few turns are reduced by repeated 2pi steps rather than a
// modulo. NaN and infinities yield NaN.
func (a Angle) Normalized() Angle {
	r := a.Rad
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Angle{Rad: math.NaN()}
	}
	if math.Abs(r) > maxStepTurns*twoPi {
		r = math.Remainder(r, twoPi)
	}
	for r > math.Pi {
		r -= twoPi
	}
	for r <= -math.Pi {
		r += twoPi
	}
	return Angle{Rad: r}
}

// DistanceToAngle is the signed shortest rotation from a to other.
func (a Angle) DistanceToAngle(other Angle) Angle {
	return other.Sub(a).Normalized()
}

// DistanceToRange treats [min, max] as an arc around its midpoint and returns
// how far a lies past the nearest edge: positive beyond max, negative before
// min, zero inside.
func (a Angle) DistanceToRange(min, max Angle) Angle {
	mid := min.Add(max).Scale(0.5)
	half := math.Abs(max.Rad-min.Rad) * 0.5
	delta := a.Sub(mid).Normalized().Rad
	switch {
	case delta > half:
		return Angle{Rad: delta - half}
	case delta < -half:
		return Angle{Rad: delta + half}
	default:
		return Angle{}
	}
}

// ClosestInRange clamps a onto the arc [min, max].
func (a Angle) ClosestInRange(min, max Angle) Angle {
	over := a.DistanceToRange(min, max)
	if over.Rad == 0 {
		return a
	}
	return a.Sub(over).Normalized()
}

// ToDirection returns the unit heading vector: 0 is (0,1), 90 degrees is (1,0).
func (a Angle) ToDirection() WDir {
	s, c := math.Sincos(a.Rad)
	return WDir{X: s, Z: c}
}

// FromDirection is the inverse of ToDirection. A zero vector maps to 0.
func FromDirection(d WDir) Angle {
	return Angle{Rad: math.Atan2(d.X, d.Z)}
}
