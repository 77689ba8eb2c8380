package main

import (
	"slices"
	"time"

	"github.com/raidkit/safezone/pkg/arena"
	"github.com/raidkit/safezone/pkg/core"
	"github.com/raidkit/safezone/pkg/safezone"
	"github.com/raidkit/safezone/pkg/shape"
)

// scenario is a canned encounter: an arena, a timeline of zones and the
// query a helper would run against it.
type scenario struct {
	name  string
	about string
	arena arena.Bounds
	zones func(start time.Time) []safezone.Zone
	// at is how long after start the query is evaluated
	at    time.Duration
	query func(c *safezone.Calculator, now time.Time) *safezone.Query
}

func pos(x, z float64) core.WPos { return core.WPos{X: x, Z: z} }

var scenarios = map[string]scenario{
	"single": {
		name:  "single",
		about: "raidwide circle under the boss, spread four ways",
		arena: arena.NewCircle(pos(100, 100), 20),
		zones: func(time.Time) []safezone.Zone {
			return []safezone.Zone{
				safezone.NewImmediateZone("raidwide", shape.Circle{Center: pos(100, 100), Radius: 5}),
			}
		},
		query: func(c *safezone.Calculator, now time.Time) *safezone.Query {
			return c.FindSafePositions(4, now).MinDistanceBetween(3)
		},
	},
	"twin": {
		name:  "twin",
		about: "two opposite cones from the center, stack east with angular spread",
		arena: arena.NewSquare(pos(0, 0), 15),
		zones: func(time.Time) []safezone.Zone {
			return []safezone.Zone{
				safezone.NewImmediateZone("north cone", shape.Cone{Origin: pos(0, 0), Radius: 25, HalfAngle: core.Degrees(30)}),
				safezone.NewImmediateZone("south cone", shape.Cone{Origin: pos(0, 0), Radius: 25, Rotation: core.Degrees(180), HalfAngle: core.Degrees(30)}),
			}
		},
		query: func(c *safezone.Calculator, now time.Time) *safezone.Query {
			return c.FindSafePositions(6, now).
				NearTarget(pos(8, 0), 0).
				MinDistanceBetween(2.5).
				WithMinAngle(pos(0, 0), core.Degrees(15))
		},
	},
	"cleave": {
		name:  "cleave",
		about: "frontal cleave and a line charge that resolve three seconds in",
		arena: arena.NewCircle(pos(0, 0), 20),
		zones: func(start time.Time) []safezone.Zone {
			resolve := start.Add(3 * time.Second)
			return []safezone.Zone{
				safezone.NewImmediateZone("hitbox", shape.Circle{Center: pos(0, 0), Radius: 3}),
				safezone.NewZone("cleave", shape.Cone{Origin: pos(0, 0), Radius: 25, HalfAngle: core.Degrees(60)}, resolve),
				safezone.NewZone("charge", shape.RectBetween(pos(-20, -8), pos(20, -8), 3), resolve),
			}
		},
		at: 3 * time.Second,
		query: func(c *safezone.Calculator, now time.Time) *safezone.Query {
			return c.FindSafePositions(4, now).
				OrderByDistanceTo(pos(0, 0)).
				MinDistanceBetween(3)
		},
	},
	"donut": {
		name:  "donut",
		about: "everything but the inner ring is lethal, with a rotating arc",
		arena: arena.NewCircle(pos(0, 0), 25),
		zones: func(time.Time) []safezone.Zone {
			return []safezone.Zone{
				safezone.NewImmediateZone("donut", shape.Donut{Center: pos(0, 0), InnerRadius: 8, OuterRadius: 30}),
				safezone.NewImmediateZone("arc", shape.ArcCapsule{Origin: pos(0, 5), OrbitCenter: pos(0, 0), AngularLength: core.Degrees(90), TubeRadius: 1}),
			}
		},
		query: func(c *safezone.Calculator, now time.Time) *safezone.Query {
			return c.FindSafePositionsAround(4, now, pos(0, 0), 10).MinDistanceBetween(2)
		},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
