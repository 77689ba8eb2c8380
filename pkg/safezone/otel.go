package safezone

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/raidkit/safezone/pkg/safezone"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// queryMetrics are recorded through the global meter provider, which is a no-op
// unless the host installs one.
type queryMetrics struct {
	executed   metric.Int64Counter
	capped     metric.Int64Counter
	candidates metric.Int64Histogram
	results    metric.Int64Histogram
}

func newQueryMetrics() (*queryMetrics, error) {
	m := meter()
	qm := &queryMetrics{}

	var err error

	qm.executed, err = m.Int64Counter(
		"safezone.query.executed",
		metric.WithDescription("Total safe-position queries executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating executed counter: %w", err)
	}

	qm.capped, err = m.Int64Counter(
		"safezone.query.capped",
		metric.WithDescription("Queries whose candidate generation hit the cap"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating capped counter: %w", err)
	}

	qm.candidates, err = m.Int64Histogram(
		"safezone.query.candidates",
		metric.WithDescription("Poisson-disc candidates generated per query"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating candidates histogram: %w", err)
	}

	qm.results, err = m.Int64Histogram(
		"safezone.query.results",
		metric.WithDescription("Positions returned per query"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating results histogram: %w", err)
	}

	return qm, nil
}

func (qm *queryMetrics) record(candidates, results int, capped bool) {
	ctx := context.Background()
	qm.executed.Add(ctx, 1)
	qm.candidates.Record(ctx, int64(candidates))
	qm.results.Record(ctx, int64(results))
	if capped {
		qm.capped.Add(ctx, 1)
	}
}
