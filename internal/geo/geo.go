// Package geo renders shapes, arenas and point sets as simplefeatures
// geometries so they can be inspected as WKT. World X maps to geometry X and
// world Z maps to geometry Y.
package geo

import (
	"errors"
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/raidkit/safezone/pkg/arena"
	"github.com/raidkit/safezone/pkg/core"
	"github.com/raidkit/safezone/pkg/shape"
)

// MinSegments is the lowest circle resolution ShapeOutline will use.
const MinSegments = 8

var (
	// ErrUnbounded is returned for shapes without a finite outline.
	ErrUnbounded = errors.New("shape is unbounded")
	// ErrUnsupported is returned for shapes geo does not know how to draw.
	ErrUnsupported = errors.New("unsupported shape")
)

// ShapeOutline approximates s as a polygon. Curved edges use segments steps
// per full turn.
func ShapeOutline(s shape.Shape, segments int) (geom.Geometry, error) {
	segments = max(segments, MinSegments)

	switch v := s.(type) {
	case shape.Circle:
		return polygon(circle(v.Center, v.Radius, segments))
	case shape.Donut:
		return donut(v.Center, v.InnerRadius, v.OuterRadius, segments)
	case shape.Cone:
		if v.HalfAngle.Rad >= math.Pi {
			return polygon(circle(v.Origin, v.Radius, segments))
		}
		pts := []core.WPos{v.Origin}
		pts = append(pts, arc(v.Origin, v.Radius, v.Rotation.Sub(v.HalfAngle), v.HalfAngle.Scale(2), segments)...)
		return polygon(pts)
	case shape.DonutSector:
		if v.HalfAngle.Rad >= math.Pi {
			return donut(v.Origin, v.InnerRadius, v.OuterRadius, segments)
		}
		from, sweep := v.Rotation.Sub(v.HalfAngle), v.HalfAngle.Scale(2)
		pts := arc(v.Origin, v.OuterRadius, from, sweep, segments)
		pts = append(pts, arc(v.Origin, v.InnerRadius, from.Add(sweep), sweep.Neg(), segments)...)
		return polygon(pts)
	case shape.Rect:
		return polygon(rect(v.Origin, v.Rotation, v.LenFront, v.LenBack, v.HalfWidth))
	case shape.Cross:
		return polygon(cross(v))
	case shape.Capsule:
		fwd := v.Rotation.ToDirection()
		end := v.Origin.Add(fwd.Scale(v.Length))
		right := v.Rotation.Add(core.Degrees(90))
		half := core.Degrees(-180)
		pts := arc(end, v.Radius, right, half, segments)
		pts = append(pts, arc(v.Origin, v.Radius, right.Add(half), half, segments)...)
		return polygon(pts)
	case shape.ArcCapsule:
		return arcCapsule(v, segments)
	case *shape.Polygon:
		return v.Geometry(), nil
	case shape.HalfPlane:
		return geom.Geometry{}, ErrUnbounded
	default:
		return geom.Geometry{}, fmt.Errorf("%w: %T", ErrUnsupported, s)
	}
}

// ArenaOutline approximates the arena border as a polygon.
func ArenaOutline(b arena.Bounds, segments int) (geom.Geometry, error) {
	switch v := b.(type) {
	case *arena.Circle:
		return polygon(circle(v.Origin, v.Radius, max(segments, MinSegments)))
	case *arena.Rect:
		c := v.Corners()
		return polygon(c[:])
	default:
		return geom.Geometry{}, fmt.Errorf("%w: %T", ErrUnsupported, b)
	}
}

// PointsMultiPoint collects positions into a single MULTIPOINT.
// Non-finite positions are rejected.
func PointsMultiPoint(points []core.WPos) (geom.MultiPoint, error) {
	pts := make([]geom.Point, len(points))
	for i, p := range points {
		pt, err := xy(p).AsPoint()
		if err != nil {
			return geom.MultiPoint{}, fmt.Errorf("point %d: %w", i, err)
		}
		pts[i] = pt
	}
	return geom.NewMultiPoint(pts), nil
}

func xy(p core.WPos) geom.XY {
	return geom.XY{X: p.X, Y: p.Z}
}

// ring closes pts into a linear ring. Vertices closer than weldDistance to
// their predecessor are dropped, so arcs can share their joining points.
func ring(pts []core.WPos) (geom.LineString, error) {
	flat := make([]float64, 0, 2*len(pts)+2)
	last := pts[0]
	flat = append(flat, last.X, last.Z)
	for _, p := range pts[1:] {
		if p.DistanceTo(last) <= weldDistance || p.DistanceTo(pts[0]) <= weldDistance {
			continue
		}
		flat = append(flat, p.X, p.Z)
		last = p
	}
	flat = append(flat, pts[0].X, pts[0].Z)
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

const weldDistance = 1e-9

func polygon(rings ...[]core.WPos) (geom.Geometry, error) {
	ls := make([]geom.LineString, len(rings))
	for i, r := range rings {
		var err error
		if ls[i], err = ring(r); err != nil {
			return geom.Geometry{}, fmt.Errorf("ring %d: %w", i, err)
		}
	}
	poly, err := geom.NewPolygon(ls)
	if err != nil {
		return geom.Geometry{}, err
	}
	return poly.AsGeometry(), nil
}

func donut(center core.WPos, inner, outer float64, segments int) (geom.Geometry, error) {
	if inner <= 0 {
		return polygon(circle(center, outer, segments))
	}
	return polygon(circle(center, outer, segments), circle(center, inner, segments))
}

func circle(center core.WPos, radius float64, segments int) []core.WPos {
	pts := make([]core.WPos, segments)
	step := 2 * math.Pi / float64(segments)
	for i := range segments {
		pts[i] = center.Add(core.Radians(step * float64(i)).ToDirection().Scale(radius))
	}
	return pts
}

// arc walks from heading from by sweep (clockwise positive), endpoints included.
func arc(center core.WPos, radius float64, from, sweep core.Angle, segments int) []core.WPos {
	steps := max(int(math.Ceil(float64(segments)*math.Abs(sweep.Rad)/(2*math.Pi))), 1)
	pts := make([]core.WPos, steps+1)
	for i := range pts {
		h := from.Add(sweep.Scale(float64(i) / float64(steps)))
		pts[i] = center.Add(h.ToDirection().Scale(radius))
	}
	return pts
}

func rect(origin core.WPos, rotation core.Angle, front, back, halfWidth float64) []core.WPos {
	fwd := rotation.ToDirection()
	right := fwd.OrthoR().Scale(halfWidth)
	head := origin.Add(fwd.Scale(front))
	tail := origin.SubDir(fwd.Scale(back))
	return []core.WPos{head.Add(right), tail.Add(right), tail.SubDir(right), head.SubDir(right)}
}

func cross(c shape.Cross) []core.WPos {
	l, w := c.Length, c.HalfWidth
	local := []core.WDir{
		{X: w, Z: l}, {X: w, Z: w}, {X: l, Z: w},
		{X: l, Z: -w}, {X: w, Z: -w}, {X: w, Z: -l},
		{X: -w, Z: -l}, {X: -w, Z: -w}, {X: -l, Z: -w},
		{X: -l, Z: w}, {X: -w, Z: w}, {X: -w, Z: l},
	}
	fwd := c.Rotation.ToDirection()
	pts := make([]core.WPos, len(local))
	for i, d := range local {
		pts[i] = c.Origin.Add(d.Rotate(fwd))
	}
	return pts
}

func arcCapsule(a shape.ArcCapsule, segments int) (geom.Geometry, error) {
	arm := a.Origin.Sub(a.OrbitCenter)
	r := arm.Length()
	outer, inner := r+a.TubeRadius, math.Max(r-a.TubeRadius, 0)
	if math.Abs(a.AngularLength.Rad) >= 2*math.Pi {
		return donut(a.OrbitCenter, inner, outer, segments)
	}

	start := core.FromDirection(arm)
	end := start.Add(a.AngularLength)
	turn := core.Degrees(180)
	if a.AngularLength.Rad < 0 {
		turn = turn.Neg()
	}
	endPos := a.OrbitCenter.Add(end.ToDirection().Scale(r))

	pts := arc(a.OrbitCenter, outer, start, a.AngularLength, segments)
	pts = append(pts, arc(endPos, a.TubeRadius, end, turn, segments)...)
	pts = append(pts, arc(a.OrbitCenter, inner, end, a.AngularLength.Neg(), segments)...)
	pts = append(pts, arc(a.Origin, a.TubeRadius, start.Add(core.Degrees(180)), turn, segments)...)
	return polygon(pts)
}
