package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/raidkit/safezone/internal/config"
	"github.com/raidkit/safezone/internal/geo"
	"github.com/raidkit/safezone/pkg/safezone"
	"github.com/raidkit/safezone/pkg/shape"
	"github.com/raidkit/safezone/pkg/viz"
)

// probe runs scenarios against fresh calculators and prints the outcome as WKT.
type probe struct {
	out      io.Writer
	logger   safezone.Logger
	engine   config.EngineConfig
	registry *viz.Registry
	start    time.Time
	seed     uint64
}

func newProbe(out io.Writer, logger safezone.Logger, engine config.EngineConfig, seed uint64) *probe {
	return &probe{
		out:      out,
		logger:   logger,
		engine:   engine,
		registry: viz.NewRegistry(),
		start:    SessionStartTime,
		seed:     seed,
	}
}

// run evaluates sc and leaves its points in the registry under sc.name.
func (p *probe) run(sc scenario) (*safezone.Calculator, error) {
	defer ScenarioScope.Enter(sc.name)()

	c, err := safezone.NewCalculator(
		safezone.WithLogger(p.logger),
		safezone.WithTuning(p.engine.Tuning()),
		safezone.WithArena(sc.arena),
		safezone.WithSink(p.registry.Register(sc.name)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculator: %w", err)
	}
	if err := c.AddForbiddenZones(sc.zones(p.start)...); err != nil {
		return nil, fmt.Errorf("failed to add zones: %w", err)
	}

	now := p.start.Add(sc.at)
	rng := rand.New(rand.NewPCG(p.seed, p.seed))
	if _, err := sc.query(c, now).WithRand(rng).Execute(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.name, err)
	}
	return c, nil
}

// render runs sc and writes the arena, active zones, chosen points and the
// single-point helpers' answers.
func (p *probe) render(sc scenario) error {
	c, err := p.run(sc)
	if err != nil {
		return err
	}
	now := p.start.Add(sc.at)
	segments := p.engine.RenderSegments

	fmt.Fprintf(p.out, "# %s: %s\n", sc.name, sc.about)

	outline, err := geo.ArenaOutline(c.ArenaBounds(), segments)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "arena\t%s\n", outline.AsText())

	for z := range c.ActiveZones(now) {
		g, err := geo.ShapeOutline(z.Shape, segments)
		if errors.Is(err, geo.ErrUnbounded) {
			fmt.Fprintf(p.out, "zone %s\t(unbounded)\n", z.Name)
			continue
		}
		if err != nil {
			return fmt.Errorf("zone %s: %w", z.Name, err)
		}
		fmt.Fprintf(p.out, "zone %s\t%s\n", z.Name, g.AsText())
	}

	rep, ok := p.registry.Latest(sc.name)
	if !ok {
		return fmt.Errorf("scenario %s reported no points", sc.name)
	}
	points, err := geo.PointsMultiPoint(rep.Points)
	if err != nil {
		return fmt.Errorf("scenario %s points: %w", sc.name, err)
	}
	fmt.Fprintf(p.out, "points\t%s\n", points.AsText())

	center := c.ArenaBounds().Center()
	dir, err := c.FindSafestDirection(center, now, p.engine.DirectionSamples)
	if err != nil {
		return err
	}
	best, err := c.FindSafestPosition(center, c.ArenaBounds().ApproximateRadius(), now, p.engine.GridResolution)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "safest direction\t%.3f %.3f\n", dir.X, dir.Z)
	fmt.Fprintf(p.out, "safest position\t%.3f %.3f (clearance %.3f)\n",
		best.X, best.Z, c.DistanceToNearestDanger(best, now))
	fmt.Fprintln(p.out)
	return nil
}

// polygonScenario forbids the given outline inside the single-boss arena.
func polygonScenario(input string) (scenario, error) {
	vertices, err := geo.ParsePolyline(input)
	if err != nil {
		return scenario{}, err
	}
	poly, err := shape.NewPolygon(vertices)
	if err != nil {
		return scenario{}, err
	}
	base := scenarios["single"]
	return scenario{
		name:  "polygon",
		about: "custom polygon in the single-boss arena",
		arena: base.arena,
		zones: func(time.Time) []safezone.Zone {
			return []safezone.Zone{safezone.NewImmediateZone("polygon", poly)}
		},
		query: base.query,
	}, nil
}
