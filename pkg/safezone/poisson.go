package safezone

import (
	"math"
	"math/rand/v2"

	"github.com/raidkit/safezone/pkg/arena"
	"github.com/raidkit/safezone/pkg/core"
)

// cellKey addresses a cell of the sampler's background grid
type cellKey struct {
	x, z int
}

// sampler generates Poisson-disc candidates (Bridson) inside a disc,
// optionally clipped to an arena. No two accepted points are closer than
// minDistance. Generation stops early once limit points exist.
type sampler struct {
	center      core.WPos
	radius      float64
	minDistance float64
	arena       arena.Bounds
	attempts    int
	limit       int
	rng         *rand.Rand

	cellSize float64
	grid     map[cellKey]int
	points   []core.WPos
	capped   bool
}

func (s *sampler) generate(seed core.WPos) []core.WPos {
	s.cellSize = s.minDistance / math.Sqrt2
	s.grid = make(map[cellKey]int)
	s.points = s.points[:0]
	s.capped = false

	s.place(seed)
	active := []int{0}

	for len(active) > 0 {
		if len(s.points) >= s.limit {
			s.capped = true
			break
		}
		slot := s.rng.IntN(len(active))
		origin := s.points[active[slot]]

		placed := false
		for range s.attempts {
			dist := s.minDistance * (1 + s.rng.Float64())
			heading := core.Radians(s.rng.Float64() * 2 * math.Pi)
			p := origin.Add(heading.ToDirection().Scale(dist))
			if !s.accepts(p) {
				continue
			}
			active = append(active, s.place(p))
			placed = true
			break
		}
		if !placed {
			active[slot] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return s.points
}

func (s *sampler) cell(p core.WPos) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / s.cellSize)),
		z: int(math.Floor(p.Z / s.cellSize)),
	}
}

func (s *sampler) place(p core.WPos) int {
	idx := len(s.points)
	s.points = append(s.points, p)
	s.grid[s.cell(p)] = idx
	return idx
}

// accepts checks the search disc, the arena and the 5x5 cell neighbourhood.
func (s *sampler) accepts(p core.WPos) bool {
	if p.DistanceSqTo(s.center) > s.radius*s.radius {
		return false
	}
	if s.arena != nil && !s.arena.Contains(p) {
		return false
	}
	c := s.cell(p)
	minSq := s.minDistance * s.minDistance
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			idx, ok := s.grid[cellKey{x: c.x + dx, z: c.z + dz}]
			if ok && s.points[idx].DistanceSqTo(p) < minSq {
				return false
			}
		}
	}
	return true
}
