package shape

import (
	"math"
	"testing"

	"github.com/raidkit/safezone/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func pos(x, z float64) core.WPos { return core.WPos{X: x, Z: z} }

func TestCircle_SignConvention(t *testing.T) {
	c := Circle{Center: pos(0, 0), Radius: 5}

	assert.InDelta(t, -5, c.Distance(pos(0, 0)), eps)
	assert.InDelta(t, 0, c.Distance(pos(5, 0)), eps)
	assert.InDelta(t, 5, c.Distance(pos(10, 0)), eps)

	assert.True(t, Contains(c, pos(5, 0)))
	assert.False(t, Contains(c, pos(5.01, 0)))
}

func TestDonut(t *testing.T) {
	d := Donut{Center: pos(10, 10), InnerRadius: 3, OuterRadius: 8}

	assert.InDelta(t, 3, d.Distance(pos(10, 10)), eps, "center is safe, 3 from inner edge")
	assert.InDelta(t, -2, d.Distance(pos(15, 10)), eps)
	assert.InDelta(t, 2, d.Distance(pos(20, 10)), eps)
	assert.InDelta(t, 0, d.Distance(pos(10, 13)), eps)
}

func TestCone(t *testing.T) {
	// 90 degree cone facing east
	c := Cone{Origin: pos(0, 0), Radius: 10, Rotation: core.Degrees(90), HalfAngle: core.Degrees(45)}

	tests := []struct {
		name   string
		p      core.WPos
		inside bool
	}{
		{"on axis", pos(5, 0), true},
		{"inside edge", pos(5, 4), true},
		{"outside wedge", pos(5, 6), false},
		{"behind apex", pos(-5, 0), false},
		{"beyond radius", pos(11, 0), false},
		{"facing north", pos(0, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, Contains(c, tt.p), "distance %v", c.Distance(tt.p))
		})
	}

	assert.InDelta(t, 1, c.Distance(pos(11, 0)), eps)
	assert.InDelta(t, -5*math.Sin(math.Pi/4), c.Distance(pos(5, 0)), eps)
}

func TestCone_FullCircle(t *testing.T) {
	c := Cone{Origin: pos(0, 0), Radius: 4, HalfAngle: core.Radians(math.Pi)}
	assert.InDelta(t, -4, c.Distance(pos(0, 0)), eps)
	assert.True(t, Contains(c, pos(0, -3)))
}

func TestCone_WideAperture(t *testing.T) {
	c := Cone{Origin: pos(0, 0), Radius: 10, HalfAngle: core.Degrees(135)}
	assert.True(t, Contains(c, pos(5, -1)), "110 degrees off axis is inside a 135 half angle")
	assert.False(t, Contains(c, pos(0, -5)), "directly behind is outside")
}

func TestDonutSector(t *testing.T) {
	s := DonutSector{Origin: pos(0, 0), InnerRadius: 5, OuterRadius: 10, HalfAngle: core.Degrees(30)}

	assert.True(t, Contains(s, pos(0, 7)))
	assert.False(t, Contains(s, pos(0, 3)), "inside inner radius")
	assert.False(t, Contains(s, pos(0, 12)), "beyond outer radius")
	assert.False(t, Contains(s, pos(7, 0)), "outside the angular span")
}

func TestRect(t *testing.T) {
	r := Rect{Origin: pos(0, 0), LenFront: 10, LenBack: 2, HalfWidth: 3}

	assert.InDelta(t, -3, r.Distance(pos(0, 5)), eps)
	assert.InDelta(t, 0, r.Distance(pos(0, 10)), eps)
	assert.InDelta(t, 1, r.Distance(pos(0, -3)), eps)
	assert.InDelta(t, 2, r.Distance(pos(5, 5)), eps)
	assert.InDelta(t, math.Sqrt2, r.Distance(pos(4, 11)), eps)
}

func TestRect_Rotated(t *testing.T) {
	r := Rect{Origin: pos(0, 0), Rotation: core.Degrees(90), LenFront: 10, HalfWidth: 1}

	assert.True(t, Contains(r, pos(9, 0)))
	assert.False(t, Contains(r, pos(0, 9)))
}

func TestRectBetween(t *testing.T) {
	r := RectBetween(pos(0, 0), pos(10, 10), 1)
	assert.True(t, Contains(r, pos(5, 5)))
	assert.False(t, Contains(r, pos(5, 8)))
	assert.InDelta(t, 0, r.Distance(pos(10, 10)), 1e-9)
}

func TestCross(t *testing.T) {
	c := Cross{Origin: pos(0, 0), Length: 10, HalfWidth: 1}

	assert.True(t, Contains(c, pos(0, 9)))
	assert.True(t, Contains(c, pos(-9, 0)))
	assert.False(t, Contains(c, pos(5, 5)))
	assert.InDelta(t, 4, c.Distance(pos(5, 5)), eps)
}

func TestCapsule(t *testing.T) {
	c := Capsule{Origin: pos(0, 0), Length: 10, Radius: 2}

	assert.InDelta(t, -2, c.Distance(pos(0, 5)), eps)
	assert.InDelta(t, 1, c.Distance(pos(0, 13)), eps)
	assert.InDelta(t, 1, c.Distance(pos(0, -3)), eps)
	assert.InDelta(t, 1, c.Distance(pos(3, 5)), eps)
}

func TestArcCapsule(t *testing.T) {
	// quarter arc of radius 10 from north to east around the origin
	a := ArcCapsule{Origin: pos(0, 10), OrbitCenter: pos(0, 0), AngularLength: core.Degrees(90), TubeRadius: 1}

	mid := core.Degrees(45).ToDirection().Scale(10).ToPos()
	assert.InDelta(t, -1, a.Distance(mid), eps)
	assert.InDelta(t, 1, a.Distance(core.Degrees(45).ToDirection().Scale(12).ToPos()), eps)

	// south is far from both arc ends
	assert.InDelta(t, math.Sqrt(200)-1, a.Distance(pos(-10, 0)), 1e-6)
	assert.False(t, Contains(a, pos(0, -10)))
}

func TestArcCapsule_NegativeSweep(t *testing.T) {
	a := ArcCapsule{Origin: pos(0, 10), OrbitCenter: pos(0, 0), AngularLength: core.Degrees(-90), TubeRadius: 1}
	assert.True(t, Contains(a, pos(-10, 0)), "west end is on a counter-clockwise sweep")
	assert.False(t, Contains(a, pos(10, 0)))
}

func TestHalfPlane(t *testing.T) {
	h := HalfPlane{Point: pos(0, 0), Normal: core.WDir{X: 2}}

	assert.InDelta(t, 3, h.Distance(pos(3, 7)), eps)
	assert.InDelta(t, -3, h.Distance(pos(-3, -7)), eps)
	assert.True(t, Contains(h, pos(-1, 0)))
}

func TestHalfPlane_ZeroNormalIsNaN(t *testing.T) {
	h := HalfPlane{Point: pos(0, 0)}
	assert.True(t, math.IsNaN(h.Distance(pos(1, 1))))
	assert.False(t, Contains(h, pos(1, 1)), "NaN never compares as inside")
}

func TestFunc(t *testing.T) {
	f := Func(func(p core.WPos) float64 { return p.X })
	assert.True(t, Contains(f, pos(-1, 0)))
	assert.False(t, Contains(f, pos(1, 0)))
}

func TestPolygon(t *testing.T) {
	sq, err := NewPolygon([]core.WPos{pos(0, 0), pos(10, 0), pos(10, 10), pos(0, 10)})
	require.NoError(t, err)

	assert.InDelta(t, -5, sq.Distance(pos(5, 5)), eps)
	assert.InDelta(t, -1, sq.Distance(pos(1, 5)), eps)
	assert.InDelta(t, 2, sq.Distance(pos(12, 5)), eps)
	assert.Len(t, sq.Vertices(), 4)
}

func TestPolygon_TooFewVertices(t *testing.T) {
	_, err := NewPolygon([]core.WPos{pos(0, 0), pos(1, 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPolygon)
}

func TestPolygon_SelfIntersecting(t *testing.T) {
	bowtie := []core.WPos{pos(0, 0), pos(10, 10), pos(10, 0), pos(0, 10)}
	_, err := NewPolygon(bowtie)
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	_, err = NewPolygon([]core.WPos{pos(1, 1), pos(1, 1), pos(1, 1)})
	assert.ErrorIs(t, err, ErrInvalidPolygon, "a single distinct vertex")
}

func TestPolygon_NonFiniteQuery(t *testing.T) {
	sq, err := NewPolygon([]core.WPos{pos(0, 0), pos(10, 0), pos(10, 10), pos(0, 10)})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(sq.Distance(pos(math.NaN(), 5))))
	assert.False(t, Contains(sq, pos(math.Inf(1), 5)))
}
