package safezone

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/raidkit/safezone/pkg/arena"
	"github.com/raidkit/safezone/pkg/core"
	"github.com/raidkit/safezone/pkg/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func assertSpacing(t *testing.T, points []core.WPos, minDistance float64) {
	t.Helper()
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			assert.GreaterOrEqual(t, points[i].DistanceTo(points[j]), minDistance-1e-9,
				"points %d and %d too close", i, j)
		}
	}
}

func TestQuery_RaidScenario(t *testing.T) {
	center := core.Vec3{X: 100, Y: 0, Z: 100}.XZ()
	c := newTestCalculator(t, WithArena(arena.NewCircle(center, 20)))
	require.NoError(t, c.AddForbiddenZone(circleZone("raidwide", center.X, center.Z, 5)))

	for seed := uint64(1); seed <= 5; seed++ {
		points, err := c.FindSafePositions(4, t0).MinDistanceBetween(3).WithRand(seeded(seed)).Execute()
		require.NoError(t, err)
		require.Len(t, points, 4, "seed %d", seed)

		for _, p := range points {
			assert.True(t, c.IsSafe(p, t0))
			assert.True(t, c.ArenaBounds().Contains(p))
			assert.GreaterOrEqual(t, p.DistanceTo(center), 5.0)
		}
		assertSpacing(t, points, 3)
	}
}

func TestQuery_NoArena(t *testing.T) {
	c := newTestCalculator(t)
	_, err := c.FindSafePositions(4, t0).MinDistanceBetween(3).Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArenaNotSet)
}

func TestQuery_InvalidConfiguration(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name  string
		query *Query
	}{
		{"zero count", c.FindSafePositionsAround(0, t0, pos(0, 0), 10)},
		{"zero radius", c.FindSafePositionsAround(3, t0, pos(0, 0), 0)},
		{"negative max distance", c.FindSafePositionsAround(3, t0, pos(0, 0), 10).NearTarget(pos(0, 0), -1)},
		{"zero floor", c.FindSafePositionsAround(3, t0, pos(0, 0), 10).MinDistanceBetweenFloor(2, 0)},
		{"negative spacing", c.FindSafePositionsAround(3, t0, pos(0, 0), 10).MinDistanceBetween(-3)},
		{"NaN spacing", c.FindSafePositionsAround(3, t0, pos(0, 0), 10).MinDistanceBetween(math.NaN())},
		{"negative angle", c.FindSafePositionsAround(3, t0, pos(0, 0), 10).WithMinAngle(pos(0, 0), core.Degrees(-5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.query.Execute()
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestQuery_NeverExceedsCount(t *testing.T) {
	c := newTestCalculator(t)
	for _, count := range []int{1, 2, 7, 30} {
		points, err := c.FindSafePositionsAround(count, t0, pos(0, 0), 15).
			MinDistanceBetween(2).WithRand(seeded(uint64(count))).Execute()
		require.NoError(t, err)
		assert.LessOrEqual(t, len(points), count)
		assert.NotEmpty(t, points)
	}
}

func TestQuery_EmptyResultIsNotError(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 10)))
	require.NoError(t, c.AddForbiddenZone(circleZone("everything", 0, 0, 50)))

	points, err := c.FindSafePositions(3, t0).WithRand(seeded(7)).Execute()
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestQuery_NearTargetOrdering(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 20)))
	require.NoError(t, c.AddForbiddenZone(circleZone("mid", 0, 0, 4)))
	target := pos(10, 10)

	points, err := c.FindSafePositions(6, t0).
		NearTarget(target, 0).
		MinDistanceBetween(2).
		WithRand(seeded(11)).
		Execute()
	require.NoError(t, err)
	require.Len(t, points, 6)

	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].DistanceSqTo(target), points[i].DistanceSqTo(target))
	}
	assert.Less(t, points[0].DistanceTo(target), 2.0, "the seed sits on the target")
}

func TestQuery_MaxDistanceFromTarget(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 30)))
	target := pos(-10, 5)

	points, err := c.FindSafePositions(50, t0).
		NearTarget(target, 6).
		MinDistanceBetween(2).
		WithRand(seeded(3)).
		Execute()
	require.NoError(t, err)
	require.NotEmpty(t, points)
	for _, p := range points {
		assert.LessOrEqual(t, p.DistanceTo(target), 6.0)
	}
}

func TestQuery_OrderByDistanceTo(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewSquare(pos(0, 0), 15)))
	ref := pos(-15, -15)

	points, err := c.FindSafePositions(8, t0).
		NearTarget(pos(10, 10), 0).
		OrderByDistanceTo(ref).
		MinDistanceBetween(3).
		WithRand(seeded(5)).
		Execute()
	require.NoError(t, err)
	require.Len(t, points, 8)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].DistanceSqTo(ref), points[i].DistanceSqTo(ref))
	}
}

func TestQuery_MinAngleSeparation(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 20)))
	require.NoError(t, c.AddForbiddenZone(circleZone("boss", 0, 0, 6)))
	minAngle := core.Degrees(40)

	points, err := c.FindSafePositions(8, t0).
		MinDistanceBetween(2).
		WithMinAngle(pos(0, 0), minAngle).
		WithRand(seeded(9)).
		Execute()
	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.LessOrEqual(t, len(points), 8)

	for i := range points {
		for j := i + 1; j < len(points); j++ {
			a := core.FromDirection(points[i].Sub(pos(0, 0)))
			b := core.FromDirection(points[j].Sub(pos(0, 0)))
			assert.GreaterOrEqual(t, math.Abs(a.DistanceToAngle(b).Rad), minAngle.Rad-1e-9)
		}
	}
}

func TestQuery_DeterministicWithSeed(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 25)))
	require.NoError(t, c.AddForbiddenZone(circleZone("a", 5, 5, 6)))

	run := func() []core.WPos {
		pts, err := c.FindSafePositions(10, t0).MinDistanceBetween(2.5).WithRand(seeded(42)).Execute()
		require.NoError(t, err)
		return pts
	}
	assert.Equal(t, run(), run())
}

func TestQuery_ReportsToSink(t *testing.T) {
	reg := viz.NewRegistry()
	sink := reg.Register("party")
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 10)), WithSink(sink))

	points, err := c.FindSafePositions(3, t0).MinDistanceBetween(2).WithRand(seeded(1)).Execute()
	require.NoError(t, err)

	rep, ok := reg.Latest("party")
	require.True(t, ok)
	assert.Equal(t, points, rep.Points)
	assert.Equal(t, t0, rep.At)

	reg.Unregister("party")
	_, err = c.FindSafePositions(3, t0.Add(time.Second)).WithRand(seeded(2)).Execute()
	require.NoError(t, err)
	_, ok = reg.Latest("party")
	assert.False(t, ok)
}

func TestQuery_CandidateCapFailsClosed(t *testing.T) {
	logger := &testLogger{}
	c := newTestCalculator(t,
		WithArena(arena.NewCircle(pos(0, 0), 1000)),
		WithTuning(Tuning{MaxCandidates: 200}),
		WithLogger(logger),
	)

	points, err := c.FindSafePositions(5, t0).MinDistanceBetween(0.5).WithRand(seeded(1)).Execute()
	require.NoError(t, err)
	assert.Len(t, points, 5)

	found := false
	for _, m := range logger.messages {
		if strings.HasPrefix(m, "WARN: candidate generation hit cap") {
			found = true
		}
	}
	assert.True(t, found, "cap hit should be logged as a warning")
}

func TestQuery_SinkCannotRewriteResults(t *testing.T) {
	sink := viz.SinkFunc(func(points []core.WPos, _ time.Time) {
		for i := range points {
			points[i] = pos(9999, 9999)
		}
	})
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 10)), WithSink(sink))

	points, err := c.FindSafePositions(3, t0).MinDistanceBetween(2).WithRand(seeded(4)).Execute()
	require.NoError(t, err)
	require.NotEmpty(t, points)
	for _, p := range points {
		assert.LessOrEqual(t, p.DistanceTo(pos(0, 0)), 10.0)
	}
}

func TestQuery_SeedPulledInsideSearchDisc(t *testing.T) {
	c := newTestCalculator(t)
	q := c.FindSafePositionsAround(3, t0, pos(0, 0), 10).NearTarget(pos(100, 0), 0)

	seed, ok := q.seed()
	require.True(t, ok)
	assert.InDelta(t, 9, seed.X, 1e-9)
	assert.InDelta(t, 0, seed.Z, 1e-9)
}

func TestQuery_SeedPulledInsideArena(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewCircle(pos(0, 0), 20)))
	q := c.FindSafePositionsAround(3, t0, pos(0, 0), 10).NearTarget(pos(0, 15), 0)

	seed, ok := q.seed()
	require.True(t, ok)
	assert.InDelta(t, 0, seed.X, 1e-9)
	assert.InDelta(t, 9, seed.Z, 1e-9, "re-projected at 90% of the search radius along the target heading")
}

func TestQuery_SeedFallsBackToCenter(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewSquare(pos(0, 0), 5)))

	tests := []struct {
		name   string
		center core.WPos
		radius float64
		want   core.WPos
	}{
		{"search center", pos(1, 1), 20, pos(1, 1)},
		{"arena center", pos(30, 30), 50, pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := c.FindSafePositionsAround(3, t0, tt.center, tt.radius).NearTarget(tt.center.Add(core.WDir{Z: 60}), 0)
			seed, ok := q.seed()
			require.True(t, ok)
			assert.Equal(t, tt.want, seed)
		})
	}
}

func TestQuery_SeedStepsTowardArena(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewSquare(pos(0, 0), 5)))
	q := c.FindSafePositionsAround(3, t0, pos(1, 1), 3)

	seed, ok := q.seed()
	require.True(t, ok, "the search center itself is usable")
	assert.Equal(t, pos(1, 1), seed)

	q = c.FindSafePositionsAround(3, t0, pos(8, 0), 4)
	seed, ok = q.seed()
	require.True(t, ok, "the disc overlaps the arena edge")
	assert.InDelta(t, 4.4, seed.X, 1e-9)
	assert.InDelta(t, 0, seed.Z, 1e-9)
}

func TestQuery_ResultsStayInSearchDisc(t *testing.T) {
	c := newTestCalculator(t, WithArena(arena.NewSquare(pos(0, 0), 5)))

	tests := []struct {
		name   string
		center core.WPos
		radius float64
	}{
		{"disc misses arena", pos(30, 30), 35},
		{"disc clips arena corner", pos(30, 30), 40},
		{"disc inside arena", pos(1, -1), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := c.FindSafePositionsAround(5, t0, tt.center, tt.radius).
				NearTarget(pos(30, 90), 0).
				MinDistanceBetween(1).
				WithRand(seeded(6)).
				Execute()
			require.NoError(t, err)
			for _, p := range points {
				assert.LessOrEqual(t, p.DistanceTo(tt.center), tt.radius)
				assert.True(t, c.ArenaBounds().Contains(p))
			}
		})
	}

	points, err := c.FindSafePositionsAround(5, t0, pos(30, 30), 35).WithRand(seeded(1)).Execute()
	require.NoError(t, err)
	assert.Empty(t, points)
}
