package safezone

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/raidkit/safezone/pkg/core"
)

// Query collects constraints for a single safe-position search. Build it with
// the Calculator's FindSafePositions methods, chain the setters and call
// Execute once. The first configuration error is kept and returned by Execute.
//
// Selection is greedy: candidates are taken nearest-to-target first and a
// candidate is dropped if its bearing from the pivot is too close to one
// already taken. The result is not guaranteed to be the largest set the
// angular constraint allows.
type Query struct {
	calc  *Calculator
	count int
	now   time.Time

	center core.WPos
	radius float64

	target      *core.WPos
	maxDistance float64

	minDistance float64

	pivot    *core.WPos
	minAngle core.Angle

	orderRef *core.WPos

	rng *rand.Rand
	err error
}

func newQuery(c *Calculator, count int, now time.Time, center core.WPos, radius float64) *Query {
	q := &Query{
		calc:        c,
		count:       count,
		now:         now,
		center:      center,
		radius:      radius,
		minDistance: c.tuning.DefaultMinDistance,
	}
	if count <= 0 {
		q.fail(fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count))
	}
	if !(radius > 0) {
		q.fail(fmt.Errorf("%w: search radius must be positive, got %v", ErrInvalidArgument, radius))
	}
	return q
}

func (q *Query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// NearTarget seeds sampling at target and orders candidates by distance to it.
// A positive maxDistance also drops candidates farther than that from target.
func (q *Query) NearTarget(target core.WPos, maxDistance float64) *Query {
	if maxDistance < 0 {
		q.fail(fmt.Errorf("%w: max distance must not be negative, got %v", ErrInvalidArgument, maxDistance))
		return q
	}
	q.target = &target
	q.maxDistance = maxDistance
	return q
}

// MinDistanceBetween sets the minimum spacing between returned points,
// raised to the configured floor. Negative spacing is rejected.
func (q *Query) MinDistanceBetween(distance float64) *Query {
	return q.MinDistanceBetweenFloor(distance, q.calc.tuning.MinDistanceFloor)
}

// MinDistanceBetweenFloor sets the minimum spacing, raised to floor.
func (q *Query) MinDistanceBetweenFloor(distance, floor float64) *Query {
	if !(floor > 0) {
		q.fail(fmt.Errorf("%w: distance floor must be positive, got %v", ErrInvalidArgument, floor))
		return q
	}
	if !(distance >= 0) {
		q.fail(fmt.Errorf("%w: distance must not be negative, got %v", ErrInvalidArgument, distance))
		return q
	}
	q.minDistance = math.Max(distance, floor)
	return q
}

// WithMinAngle requires returned points to differ in bearing from center by at least angle.
func (q *Query) WithMinAngle(center core.WPos, angle core.Angle) *Query {
	if angle.Rad < 0 || angle.IsNaN() {
		q.fail(fmt.Errorf("%w: min angle must not be negative, got %v", ErrInvalidArgument, angle))
		return q
	}
	q.pivot = &center
	q.minAngle = angle
	return q
}

// OrderByDistanceTo sorts the final selection by distance to reference.
// It defaults to the target when NearTarget was used.
func (q *Query) OrderByDistanceTo(reference core.WPos) *Query {
	q.orderRef = &reference
	return q
}

// WithRand injects the random source used for sampling.
func (q *Query) WithRand(r *rand.Rand) *Query {
	q.rng = r
	return q
}

// Execute runs the search and returns at most count safe positions.
// An empty result is not an error.
func (q *Query) Execute() ([]core.WPos, error) {
	if q.err != nil {
		return nil, q.err
	}
	rng := q.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &sampler{
		center:      q.center,
		radius:      q.radius,
		minDistance: q.minDistance,
		arena:       q.calc.arena,
		attempts:    q.calc.tuning.PoissonAttempts,
		limit:       q.calc.tuning.MaxCandidates,
		rng:         rng,
	}
	var candidates []core.WPos
	if seed, ok := q.seed(); ok {
		candidates = s.generate(seed)
	} else {
		q.calc.logger.Debug("search disc misses the arena", "center", q.center, "radius", q.radius)
	}
	if s.capped {
		q.calc.logger.Warn("candidate generation hit cap",
			"limit", s.limit, "radius", q.radius, "minDistance", q.minDistance)
	}

	safe := make([]core.WPos, 0, len(candidates))
	for _, p := range candidates {
		if !q.calc.IsSafe(p, q.now) {
			continue
		}
		if q.target != nil && q.maxDistance > 0 && p.DistanceTo(*q.target) > q.maxDistance {
			continue
		}
		safe = append(safe, p)
	}

	if q.target != nil {
		sortByDistance(safe, *q.target)
	}

	selected := q.selectPoints(safe)

	ref := q.orderRef
	if ref == nil {
		ref = q.target
	}
	if ref != nil {
		sortByDistance(selected, *ref)
	}

	q.calc.metrics.record(len(candidates), len(selected), s.capped)
	q.calc.logger.Debug("safe position query",
		"candidates", len(candidates), "safe", len(safe), "selected", len(selected))

	if q.calc.sink != nil {
		q.calc.sink.Report(slices.Clone(selected), q.now)
	}
	return selected, nil
}

// seed picks the first sample: the target if any, else the search center.
// A seed outside the search disc or arena is re-projected along the
// center-to-seed ray at SeedRadiusFraction of the radius. If that misses the
// arena the search center is tried, then a step from it toward the arena
// center. It reports false when none of them lies in both the disc and the
// arena.
func (q *Query) seed() (core.WPos, bool) {
	seed := q.center
	if q.target != nil {
		seed = *q.target
	}
	if q.usable(seed) {
		return seed, true
	}
	var fallbacks []core.WPos
	if off := seed.Sub(q.center); off.LengthSq() > 0 {
		fallbacks = append(fallbacks, q.center.Add(off.Normalized().Scale(q.radius*q.calc.tuning.SeedRadiusFraction)))
	}
	// the search radius can overshoot a rectangular arena
	fallbacks = append(fallbacks, q.center)
	if q.calc.arena != nil {
		toArena := q.calc.arena.Center().Sub(q.center)
		if dist := toArena.Length(); dist > 0 {
			step := math.Min(dist, q.radius*q.calc.tuning.SeedRadiusFraction)
			fallbacks = append(fallbacks, q.center.Add(toArena.Scale(step/dist)))
		}
	}
	for _, p := range fallbacks {
		if q.usable(p) {
			return p, true
		}
	}
	return core.WPos{}, false
}

// usable reports whether p lies in the search disc and the arena.
func (q *Query) usable(p core.WPos) bool {
	if p.DistanceSqTo(q.center) > q.radius*q.radius {
		return false
	}
	return q.calc.arena == nil || q.calc.arena.Contains(p)
}

// selectPoints walks the ordered candidates and keeps up to count of them,
// honouring the angular separation around the pivot if one is configured.
func (q *Query) selectPoints(ordered []core.WPos) []core.WPos {
	selected := make([]core.WPos, 0, min(q.count, len(ordered)))
	checkAngle := q.pivot != nil && q.minAngle.Rad > 0
	var bearings []core.Angle

	for _, p := range ordered {
		if len(selected) >= q.count {
			break
		}
		if checkAngle {
			bearing := core.FromDirection(p.Sub(*q.pivot))
			if tooClose(bearing, bearings, q.minAngle) {
				continue
			}
			bearings = append(bearings, bearing)
		}
		selected = append(selected, p)
	}
	return selected
}

func tooClose(bearing core.Angle, taken []core.Angle, minAngle core.Angle) bool {
	for _, b := range taken {
		if math.Abs(bearing.DistanceToAngle(b).Rad) < minAngle.Rad {
			return true
		}
	}
	return false
}

// sortByDistance orders points by squared distance to ref, keeping the
// original order among equals.
func sortByDistance(points []core.WPos, ref core.WPos) {
	slices.SortStableFunc(points, func(a, b core.WPos) int {
		return cmp.Compare(a.DistanceSqTo(ref), b.DistanceSqTo(ref))
	})
}
