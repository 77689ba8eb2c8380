package shape

import (
	"errors"
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/raidkit/safezone/pkg/core"
)

// ErrInvalidPolygon is returned when polygon vertices do not form a valid simple ring
var ErrInvalidPolygon = errors.New("invalid polygon")

// Polygon is an arbitrary simple polygon in world space.
// Containment and boundary distance are delegated to simplefeatures.
type Polygon struct {
	vertices []core.WPos
	area     geom.Geometry
	boundary geom.Geometry
}

// NewPolygon builds a polygon from its vertices. The ring is closed automatically.
func NewPolygon(vertices []core.WPos) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 vertices, got %d", ErrInvalidPolygon, len(vertices))
	}

	flat := make([]float64, 0, (len(vertices)+1)*2)
	for _, v := range vertices {
		flat = append(flat, v.X, v.Z)
	}
	flat = append(flat, vertices[0].X, vertices[0].Z)

	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolygon, err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolygon, err)
	}

	return &Polygon{
		vertices: append([]core.WPos(nil), vertices...),
		area:     poly.AsGeometry(),
		boundary: poly.Boundary().AsGeometry(),
	}, nil
}

// Vertices returns a copy of the polygon's vertices, without the closing point.
func (s *Polygon) Vertices() []core.WPos {
	return append([]core.WPos(nil), s.vertices...)
}

// Geometry exposes the underlying simplefeatures polygon.
func (s *Polygon) Geometry() geom.Geometry {
	return s.area
}

// Distance is NaN for non-finite positions.
func (s *Polygon) Distance(p core.WPos) float64 {
	point, err := geom.XY{X: p.X, Y: p.Z}.AsPoint()
	if err != nil {
		return math.NaN()
	}
	pt := point.AsGeometry()
	d, ok := geom.Distance(s.boundary, pt)
	if !ok {
		return math.Inf(1)
	}
	if geom.Intersects(s.area, pt) {
		return -d
	}
	return d
}
