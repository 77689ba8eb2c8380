// Package arena describes the playable region of an encounter.
package arena

import (
	"math"

	"github.com/raidkit/safezone/pkg/core"
)

// Bounds is the playable region. DistanceToBorder is positive inside, so its
// negation follows the shape convention when the arena edge is drawn as a hazard.
type Bounds interface {
	Center() core.WPos
	Contains(p core.WPos) bool
	DistanceToBorder(p core.WPos) float64
	// ApproximateRadius never underestimates the distance from Center to the farthest border point.
	ApproximateRadius() float64
}

// Circle is a round arena.
type Circle struct {
	Origin core.WPos
	Radius float64
}

// NewCircle builds a round arena.
func NewCircle(center core.WPos, radius float64) *Circle {
	return &Circle{Origin: center, Radius: radius}
}

func (c *Circle) Center() core.WPos { return c.Origin }

func (c *Circle) Contains(p core.WPos) bool {
	return p.DistanceSqTo(c.Origin) <= c.Radius*c.Radius
}

func (c *Circle) DistanceToBorder(p core.WPos) float64 {
	return c.Radius - p.DistanceTo(c.Origin)
}

func (c *Circle) ApproximateRadius() float64 { return c.Radius }

// Rect is a rectangular arena, possibly rotated. Direction is the heading of
// the long axis; HalfLength runs along it and HalfWidth across it.
type Rect struct {
	Origin     core.WPos
	Direction  core.WDir
	HalfWidth  float64
	HalfLength float64
}

// NewRect builds a rectangular arena. The direction is normalized.
func NewRect(center core.WPos, direction core.WDir, halfWidth, halfLength float64) *Rect {
	return &Rect{
		Origin:     center,
		Direction:  direction.Normalized(),
		HalfWidth:  halfWidth,
		HalfLength: halfLength,
	}
}

// NewSquare builds an axis-aligned square arena.
func NewSquare(center core.WPos, halfSize float64) *Rect {
	return NewRect(center, core.WDir{Z: 1}, halfSize, halfSize)
}

func (r *Rect) Center() core.WPos { return r.Origin }

func (r *Rect) Contains(p core.WPos) bool {
	return r.DistanceToBorder(p) >= 0
}

// DistanceToBorder is the smallest gap to the four sides, measured in the
// rectangle's own frame.
func (r *Rect) DistanceToBorder(p core.WPos) float64 {
	l := p.Sub(r.Origin).ToLocal(r.Direction)
	return math.Min(r.HalfWidth-math.Abs(l.X), r.HalfLength-math.Abs(l.Z))
}

func (r *Rect) ApproximateRadius() float64 {
	return math.Hypot(r.HalfWidth, r.HalfLength)
}

// Corners returns the four corners clockwise starting front-right.
func (r *Rect) Corners() [4]core.WPos {
	fwd := r.Direction.Scale(r.HalfLength)
	right := r.Direction.OrthoR().Scale(r.HalfWidth)
	return [4]core.WPos{
		r.Origin.Add(fwd).Add(right),
		r.Origin.SubDir(fwd).Add(right),
		r.Origin.SubDir(fwd).SubDir(right),
		r.Origin.Add(fwd).SubDir(right),
	}
}
