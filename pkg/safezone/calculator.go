// Package safezone answers "where is it safe to stand" for a set of
// time-activated forbidden zones inside an arena.
//
// A Calculator is not safe for concurrent use; callers serialize access to
// each instance. Time is always passed in by the caller and never read from
// the wall clock.
package safezone

import (
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"github.com/raidkit/safezone/pkg/arena"
	"github.com/raidkit/safezone/pkg/core"
	"github.com/raidkit/safezone/pkg/viz"
)

// NoDanger is the distance reported when no zone is active.
var NoDanger = math.Inf(1)

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSink sets where query results are reported for rendering.
func WithSink(s viz.Sink) Option {
	return func(c *Calculator) {
		c.sink = s
	}
}

// WithTuning overrides the query cost limits. Unset fields keep their defaults.
func WithTuning(t Tuning) Option {
	return func(c *Calculator) {
		c.tuning = t.withDefaults()
	}
}

// WithArena sets the initial arena bounds.
func WithArena(b arena.Bounds) Option {
	return func(c *Calculator) {
		c.arena = b
	}
}

// Calculator aggregates forbidden zones and an optional arena.
type Calculator struct {
	zones  []Zone
	arena  arena.Bounds
	sink   viz.Sink
	logger Logger
	tuning Tuning

	metrics *queryMetrics
}

// NewCalculator creates a Calculator with no zones.
func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		logger: nopLogger{},
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		opt(c)
	}

	m, err := newQueryMetrics()
	if err != nil {
		return nil, err
	}
	c.metrics = m

	return c, nil
}

// SetArenaBounds replaces the arena. Passing nil removes it.
func (c *Calculator) SetArenaBounds(b arena.Bounds) {
	c.arena = b
}

// ClearArenaBounds removes the arena.
func (c *Calculator) ClearArenaBounds() {
	c.arena = nil
}

// ArenaBounds returns the current arena, or nil.
func (c *Calculator) ArenaBounds() arena.Bounds {
	return c.arena
}

// SetSink replaces the visualization sink. Passing nil detaches it.
func (c *Calculator) SetSink(s viz.Sink) {
	c.sink = s
}

// Tuning returns the effective query limits.
func (c *Calculator) Tuning() Tuning {
	return c.tuning
}

// AddForbiddenZone appends a zone. A zone whose non-empty name is already
// present replaces the existing one in place.
func (c *Calculator) AddForbiddenZone(z Zone) error {
	if z.Shape == nil {
		return fmt.Errorf("%w: zone %q has no shape", ErrInvalidArgument, z.Name)
	}
	if z.Name != "" {
		for i := range c.zones {
			if c.zones[i].Name == z.Name {
				c.zones[i] = z
				c.logger.Debug("replaced forbidden zone", "name", z.Name, "activation", z.Activation)
				return nil
			}
		}
	}
	c.zones = append(c.zones, z)
	c.logger.Debug("added forbidden zone", "name", z.Name, "activation", z.Activation, "total", len(c.zones))
	return nil
}

// AddForbiddenZones adds zones in order, stopping at the first invalid one.
func (c *Calculator) AddForbiddenZones(zones ...Zone) error {
	for _, z := range zones {
		if err := c.AddForbiddenZone(z); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every zone. The arena is kept.
func (c *Calculator) Clear() {
	n := len(c.zones)
	c.zones = nil
	c.logger.Debug("cleared forbidden zones", "removed", n)
}

// ClearByName removes the zone with the given name and reports whether one was found.
func (c *Calculator) ClearByName(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("%w: zone name must not be blank", ErrInvalidArgument)
	}
	for i := range c.zones {
		if c.zones[i].Name == name {
			c.zones = append(c.zones[:i], c.zones[i+1:]...)
			c.logger.Debug("removed forbidden zone", "name", name)
			return true, nil
		}
	}
	return false, nil
}

// Zones returns a snapshot of all zones, active or not.
func (c *Calculator) Zones() []Zone {
	return append([]Zone(nil), c.zones...)
}

// ActiveZones lazily yields the zones active at now.
func (c *Calculator) ActiveZones(now time.Time) iter.Seq[Zone] {
	return func(yield func(Zone) bool) {
		for _, z := range c.zones {
			if z.IsActive(now) && !yield(z) {
				return
			}
		}
	}
}

// ActiveZoneCount counts the zones active at now.
func (c *Calculator) ActiveZoneCount(now time.Time) int {
	n := 0
	for _, z := range c.zones {
		if z.IsActive(now) {
			n++
		}
	}
	return n
}

// IsSafe reports whether p is inside the arena (if one is set) and outside
// every zone active at now.
func (c *Calculator) IsSafe(p core.WPos, now time.Time) bool {
	if c.arena != nil && !c.arena.Contains(p) {
		return false
	}
	for _, z := range c.zones {
		if z.IsActive(now) && z.Contains(p) {
			return false
		}
	}
	return true
}

// DistanceToNearestDanger is the smallest signed distance to any zone active
// at now, or NoDanger if none is. Arena bounds are ignored; combine with
// IsSafe when leaving the arena counts as danger.
func (c *Calculator) DistanceToNearestDanger(p core.WPos, now time.Time) float64 {
	best := NoDanger
	for _, z := range c.zones {
		if !z.IsActive(now) {
			continue
		}
		if d := z.Distance(p); d < best {
			best = d
		}
	}
	return best
}

// FindSafestDirection probes sampleCount unit steps around p, starting north
// and going clockwise, and returns the heading whose step lands farthest from
// danger. The first heading wins ties. This is a coarse heuristic, not the
// exact gradient.
func (c *Calculator) FindSafestDirection(p core.WPos, now time.Time, sampleCount int) (core.WDir, error) {
	if sampleCount <= 0 {
		return core.WDir{}, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidArgument, sampleCount)
	}
	step := 2 * math.Pi / float64(sampleCount)
	var bestDir core.WDir
	bestDist := math.Inf(-1)
	for i := 0; i < sampleCount; i++ {
		dir := core.Radians(step * float64(i)).ToDirection()
		if d := c.DistanceToNearestDanger(p.Add(dir), now); d > bestDist || i == 0 {
			bestDist = d
			bestDir = dir
		}
	}
	return bestDir, nil
}

// FindSafestPosition grid-searches the disc of the given radius around center
// for the point farthest from danger. center is returned unless some grid
// point is strictly better. Cost grows with (radius/gridResolution)^2.
func (c *Calculator) FindSafestPosition(center core.WPos, radius float64, now time.Time, gridResolution float64) (core.WPos, error) {
	if !(radius > 0) {
		return center, fmt.Errorf("%w: search radius must be positive, got %v", ErrInvalidArgument, radius)
	}
	if !(gridResolution > 0) {
		return center, fmt.Errorf("%w: grid resolution must be positive, got %v", ErrInvalidArgument, gridResolution)
	}

	best := center
	bestDist := c.DistanceToNearestDanger(center, now)
	steps := int(math.Floor(radius / gridResolution))
	radiusSq := radius * radius
	for i := -steps; i <= steps; i++ {
		for j := -steps; j <= steps; j++ {
			off := core.WDir{X: float64(i) * gridResolution, Z: float64(j) * gridResolution}
			if off.LengthSq() > radiusSq {
				continue
			}
			p := center.Add(off)
			if d := c.DistanceToNearestDanger(p, now); d > bestDist {
				best, bestDist = p, d
			}
		}
	}
	return best, nil
}

// FindSafePositions starts a query over the whole arena. Without arena bounds
// the returned query fails with ErrArenaNotSet on Execute.
func (c *Calculator) FindSafePositions(count int, now time.Time) *Query {
	if c.arena == nil {
		q := &Query{calc: c, count: count, now: now, minDistance: c.tuning.DefaultMinDistance}
		q.fail(ErrArenaNotSet)
		return q
	}
	return newQuery(c, count, now, c.arena.Center(), c.arena.ApproximateRadius())
}

// FindSafePositionsAround starts a query over an explicit disc.
func (c *Calculator) FindSafePositionsAround(count int, now time.Time, center core.WPos, radius float64) *Query {
	return newQuery(c, count, now, center, radius)
}
