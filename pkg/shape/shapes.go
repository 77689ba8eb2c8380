package shape

import (
	"github.com/raidkit/safezone/pkg/core"
)

// Shape maps a world position to a signed distance.
// Implementations are stateless and safe to evaluate repeatedly.
type Shape interface {
	Distance(p core.WPos) float64
}

// Func adapts a plain function to Shape.
type Func func(p core.WPos) float64

// Distance calls f.
func (f Func) Distance(p core.WPos) float64 {
	return f(p)
}

// Contains reports whether p lies inside or on the border of s.
func Contains(s Shape, p core.WPos) bool {
	return s.Distance(p) <= 0
}

// toLocal moves p into the frame anchored at origin and facing rotation.
func toLocal(p, origin core.WPos, rotation core.Angle) core.WDir {
	return p.Sub(origin).ToLocal(rotation.ToDirection())
}

// Circle is a disc around Center.
type Circle struct {
	Center core.WPos
	Radius float64
}

func (s Circle) Distance(p core.WPos) float64 {
	return CircleDistance(p.Sub(s.Center), s.Radius)
}

// Donut is an annulus around Center.
type Donut struct {
	Center      core.WPos
	InnerRadius float64
	OuterRadius float64
}

func (s Donut) Distance(p core.WPos) float64 {
	return DonutDistance(p.Sub(s.Center), s.InnerRadius, s.OuterRadius)
}

// Cone is a circular sector with its apex at Origin, centered on Rotation.
type Cone struct {
	Origin    core.WPos
	Radius    float64
	Rotation  core.Angle
	HalfAngle core.Angle
}

func (s Cone) Distance(p core.WPos) float64 {
	return ConeDistance(toLocal(p, s.Origin, s.Rotation), s.Radius, s.HalfAngle)
}

// DonutSector is the part of a donut inside a cone.
type DonutSector struct {
	Origin      core.WPos
	InnerRadius float64
	OuterRadius float64
	Rotation    core.Angle
	HalfAngle   core.Angle
}

func (s DonutSector) Distance(p core.WPos) float64 {
	return DonutSectorDistance(toLocal(p, s.Origin, s.Rotation), s.InnerRadius, s.OuterRadius, s.HalfAngle)
}

// Rect is a box anchored at Origin, reaching LenFront along Rotation and
// LenBack the opposite way.
type Rect struct {
	Origin    core.WPos
	Rotation  core.Angle
	LenFront  float64
	LenBack   float64
	HalfWidth float64
}

func (s Rect) Distance(p core.WPos) float64 {
	return RectDistance(toLocal(p, s.Origin, s.Rotation), s.LenFront, s.LenBack, s.HalfWidth)
}

// RectBetween builds a Rect covering the segment from a to b with the given half width.
func RectBetween(a, b core.WPos, halfWidth float64) Rect {
	d := b.Sub(a)
	return Rect{
		Origin:    a,
		Rotation:  core.FromDirection(d),
		LenFront:  d.Length(),
		HalfWidth: halfWidth,
	}
}

// Cross is a plus sign centered on Origin with arms of Length.
type Cross struct {
	Origin    core.WPos
	Rotation  core.Angle
	Length    float64
	HalfWidth float64
}

func (s Cross) Distance(p core.WPos) float64 {
	return CrossDistance(toLocal(p, s.Origin, s.Rotation), s.Length, s.HalfWidth)
}

// Capsule is a segment from Origin along Rotation, inflated by Radius.
type Capsule struct {
	Origin   core.WPos
	Rotation core.Angle
	Length   float64
	Radius   float64
}

func (s Capsule) Distance(p core.WPos) float64 {
	return CapsuleDistance(toLocal(p, s.Origin, s.Rotation), s.Length, s.Radius)
}

// ArcCapsule is a circular arc starting at Origin and orbiting OrbitCenter by
// AngularLength, inflated by TubeRadius. Positive lengths sweep clockwise.
type ArcCapsule struct {
	Origin        core.WPos
	OrbitCenter   core.WPos
	AngularLength core.Angle
	TubeRadius    float64
}

func (s ArcCapsule) Distance(p core.WPos) float64 {
	arm := s.Origin.Sub(s.OrbitCenter)
	return ArcCapsuleDistance(p.Sub(s.OrbitCenter), arm.Length(), core.FromDirection(arm), s.AngularLength, s.TubeRadius)
}

// HalfPlane is everything on the side of the line through Point opposite to Normal.
type HalfPlane struct {
	Point  core.WPos
	Normal core.WDir
}

func (s HalfPlane) Distance(p core.WPos) float64 {
	return HalfPlaneDistance(p.Sub(s.Point), s.Normal)
}
