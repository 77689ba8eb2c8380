// Package shape provides signed distance fields for forbidden-zone geometry.
//
// Every distance is negative inside the shape, zero on its border and positive
// outside. The primitive functions in this file work on a point already moved
// into the shape's local frame, where +Z is the shape's forward axis and +X is
// its right-hand side. The shape types in shapes.go apply that transform.
package shape

import (
	"math"

	"github.com/raidkit/safezone/pkg/core"
)

// CircleDistance is the distance from a local point to a circle of the given radius.
func CircleDistance(l core.WDir, radius float64) float64 {
	return l.Length() - radius
}

// DonutDistance is negative strictly between the inner and outer radius.
func DonutDistance(l core.WDir, inner, outer float64) float64 {
	r := l.Length()
	return math.Max(inner-r, r-outer)
}

// ConeDistance is the distance to a circular sector of the given radius that
// spans halfAngle to either side of the forward axis. A half angle of pi or
// more degenerates to a circle.
func ConeDistance(l core.WDir, radius float64, halfAngle core.Angle) float64 {
	if halfAngle.Rad >= math.Pi {
		return CircleDistance(l, radius)
	}
	p := core.WDir{X: math.Abs(l.X), Z: l.Z}
	c := core.WDir{X: halfAngle.Sin(), Z: halfAngle.Cos()}
	outsideRadius := p.Length() - radius
	toEdge := p.Sub(c.Scale(clamp(p.Dot(c), 0, radius))).Length()
	return math.Max(outsideRadius, toEdge*sign(c.Z*p.X-c.X*p.Z))
}

// DonutSectorDistance intersects a donut with a cone of the same outer radius.
func DonutSectorDistance(l core.WDir, inner, outer float64, halfAngle core.Angle) float64 {
	return math.Max(DonutDistance(l, inner, outer), ConeDistance(l, outer, halfAngle))
}

// RectDistance is the distance to a box reaching lenFront ahead of the origin,
// lenBack behind it and halfWidth to each side.
func RectDistance(l core.WDir, lenFront, lenBack, halfWidth float64) float64 {
	centerZ := (lenFront - lenBack) * 0.5
	halfLen := (lenFront + lenBack) * 0.5
	return boxDistance(math.Abs(l.X)-halfWidth, math.Abs(l.Z-centerZ)-halfLen)
}

// CrossDistance is the union of two perpendicular bars, each extending length
// from the origin in both directions.
func CrossDistance(l core.WDir, length, halfWidth float64) float64 {
	along := RectDistance(l, length, length, halfWidth)
	across := RectDistance(core.WDir{X: l.Z, Z: l.X}, length, length, halfWidth)
	return math.Min(along, across)
}

// CapsuleDistance is the distance to a segment running length along the
// forward axis, inflated by radius.
func CapsuleDistance(l core.WDir, length, radius float64) float64 {
	t := clamp(l.Z, 0, length)
	return core.WDir{X: l.X, Z: l.Z - t}.Length() - radius
}

// ArcCapsuleDistance is the distance to a circular arc inflated by tubeRadius.
// rel is the query point relative to the orbit center, arcRadius the orbit
// radius, start the heading of the arc's first end and sweep its signed
// angular length. Sweeps of a full turn or more are treated as a ring.
func ArcCapsuleDistance(rel core.WDir, arcRadius float64, start, sweep core.Angle, tubeRadius float64) float64 {
	half := math.Abs(sweep.Rad) * 0.5
	if half >= math.Pi {
		return math.Abs(rel.Length()-arcRadius) - tubeRadius
	}
	mid := start.Add(sweep.Scale(0.5))
	if math.Abs(mid.DistanceToAngle(core.FromDirection(rel)).Rad) <= half {
		return math.Abs(rel.Length()-arcRadius) - tubeRadius
	}
	first := start.ToDirection().Scale(arcRadius)
	last := start.Add(sweep).ToDirection().Scale(arcRadius)
	return math.Min(rel.Sub(first).Length(), rel.Sub(last).Length()) - tubeRadius
}

// HalfPlaneDistance is the signed distance of rel (relative to a point on the
// line) along normal. The side the normal points to is positive.
// A zero normal yields NaN.
func HalfPlaneDistance(rel, normal core.WDir) float64 {
	return rel.Dot(normal.Normalized())
}

// boxDistance is the exact distance to an axis-aligned box given the per-axis
// overshoot of the folded query point.
func boxDistance(qx, qz float64) float64 {
	outside := core.WDir{X: math.Max(qx, 0), Z: math.Max(qz, 0)}.Length()
	inside := math.Min(math.Max(qx, qz), 0)
	return outside + inside
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
