// pkg/core/position.go
package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// WDir is a direction or offset on the horizontal plane.
// X points east, Z points north.
type WDir struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// WPos is a world position on the horizontal plane.
type WPos struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Vec3 is a full world coordinate. Y is the vertical axis and is never read by the engine.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"` // elevation
	Z float64 `json:"z"`
}

// XZ drops the vertical component.
func (v Vec3) XZ() WPos {
	return WPos{X: v.X, Z: v.Z}
}

// WithY lifts a plane position back into world space at the given elevation.
func (p WPos) WithY(y float64) Vec3 {
	return Vec3{X: p.X, Y: y, Z: p.Z}
}

func (d WDir) vec() r2.Vec { return r2.Vec{X: d.X, Y: d.Z} }
func (p WPos) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Z} }

func dirOf(v r2.Vec) WDir { return WDir{X: v.X, Z: v.Y} }
func posOf(v r2.Vec) WPos { return WPos{X: v.X, Z: v.Y} }

// Add offsets the position by d.
func (p WPos) Add(d WDir) WPos {
	return posOf(r2.Add(p.vec(), d.vec()))
}

// Sub returns the offset from o to p.
func (p WPos) Sub(o WPos) WDir {
	return dirOf(r2.Sub(p.vec(), o.vec()))
}

// SubDir offsets the position by -d.
func (p WPos) SubDir(d WDir) WPos {
	return posOf(r2.Sub(p.vec(), d.vec()))
}

// DistanceTo is the euclidean distance between two positions.
func (p WPos) DistanceTo(o WPos) float64 {
	return r2.Norm(r2.Sub(p.vec(), o.vec()))
}

// DistanceSqTo is the squared euclidean distance between two positions.
func (p WPos) DistanceSqTo(o WPos) float64 {
	return r2.Norm2(r2.Sub(p.vec(), o.vec()))
}

// ToDir reinterprets the position as an offset from the origin.
func (p WPos) ToDir() WDir {
	return WDir{X: p.X, Z: p.Z}
}

// AlmostEqual compares both components within eps.
func (p WPos) AlmostEqual(o WPos, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Z-o.Z) <= eps
}

// Add returns d + o.
func (d WDir) Add(o WDir) WDir {
	return dirOf(r2.Add(d.vec(), o.vec()))
}

// Sub returns d - o.
func (d WDir) Sub(o WDir) WDir {
	return dirOf(r2.Sub(d.vec(), o.vec()))
}

// Scale multiplies both components by f.
func (d WDir) Scale(f float64) WDir {
	return dirOf(r2.Scale(f, d.vec()))
}

// Neg flips the direction.
func (d WDir) Neg() WDir {
	return WDir{X: -d.X, Z: -d.Z}
}

// Dot is the scalar product.
func (d WDir) Dot(o WDir) float64 {
	return r2.Dot(d.vec(), o.vec())
}

// Cross is the z component of the 3D cross product of the two plane vectors.
func (d WDir) Cross(o WDir) float64 {
	return r2.Cross(d.vec(), o.vec())
}

// Length is the euclidean norm.
func (d WDir) Length() float64 {
	return r2.Norm(d.vec())
}

// LengthSq is the squared euclidean norm.
func (d WDir) LengthSq() float64 {
	return r2.Norm2(d.vec())
}

// Normalized returns the unit vector with the same heading.
// A zero vector yields NaN components.
func (d WDir) Normalized() WDir {
	return dirOf(r2.Unit(d.vec()))
}

// OrthoR is d rotated 90 degrees clockwise (north becomes east).
func (d WDir) OrthoR() WDir {
	return WDir{X: d.Z, Z: -d.X}
}

// OrthoL is d rotated 90 degrees counter-clockwise (north becomes west).
func (d WDir) OrthoL() WDir {
	return WDir{X: -d.Z, Z: d.X}
}

// Rotate applies the rotation whose forward axis is r, so that north maps to r.
func (d WDir) Rotate(r WDir) WDir {
	right := r.OrthoR()
	return right.Scale(d.X).Add(r.Scale(d.Z))
}

// ToLocal expresses d in the frame whose forward axis is r: the result's Z
// component runs along r and its X component along r.OrthoR().
func (d WDir) ToLocal(r WDir) WDir {
	return WDir{X: d.Dot(r.OrthoR()), Z: d.Dot(r)}
}

// Abs takes the absolute value of both components.
func (d WDir) Abs() WDir {
	return WDir{X: math.Abs(d.X), Z: math.Abs(d.Z)}
}

// ToPos reinterprets the offset as a position relative to the origin.
func (d WDir) ToPos() WPos {
	return WPos{X: d.X, Z: d.Z}
}
