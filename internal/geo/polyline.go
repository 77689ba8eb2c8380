package geo

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/raidkit/safezone/pkg/core"
)

// ParsePolyline parses a JSON array of coordinates into world positions.
// Input format: "[[x1,z1],[x2,z2],...]"
func ParsePolyline(input string) ([]core.WPos, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return nil, fmt.Errorf("failed to parse polyline JSON: %w", err)
	}

	if len(coords) < 2 {
		return nil, fmt.Errorf("polyline must have at least 2 points, got %d", len(coords))
	}

	points := make([]core.WPos, len(coords))
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		points[i] = core.WPos{X: coord[0], Z: coord[1]}
	}

	return points, nil
}

// LineString joins positions into an open line. It needs two distinct,
// finite positions.
func LineString(points []core.WPos) (geom.LineString, error) {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Z)
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.LineString{}, fmt.Errorf("failed to build line string: %w", err)
	}
	return ls, nil
}
