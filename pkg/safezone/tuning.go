package safezone

// Default engine parameters.
const (
	DefaultDirectionSamples   = 8
	DefaultGridResolution     = 1.0
	DefaultPoissonAttempts    = 30
	DefaultMaxCandidates      = 10000
	DefaultMinDistanceFloor   = 0.1
	DefaultMinDistance        = 1.0
	DefaultSeedRadiusFraction = 0.9
)

// Tuning bounds the cost of safe-position queries.
type Tuning struct {
	// PoissonAttempts is how many placements are tried around an active point before it retires.
	PoissonAttempts int
	// MaxCandidates caps candidate generation; the sampler stops and keeps what it has.
	MaxCandidates int
	// MinDistanceFloor is the smallest spacing MinDistanceBetween accepts.
	MinDistanceFloor float64
	// DefaultMinDistance is used when a query sets no spacing.
	DefaultMinDistance float64
	// SeedRadiusFraction is where an out-of-range seed is re-projected, as a share of the search radius.
	SeedRadiusFraction float64
}

// DefaultTuning returns the stock parameters.
func DefaultTuning() Tuning {
	return Tuning{
		PoissonAttempts:    DefaultPoissonAttempts,
		MaxCandidates:      DefaultMaxCandidates,
		MinDistanceFloor:   DefaultMinDistanceFloor,
		DefaultMinDistance: DefaultMinDistance,
		SeedRadiusFraction: DefaultSeedRadiusFraction,
	}
}

// withDefaults fills zero or negative fields from DefaultTuning.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.PoissonAttempts <= 0 {
		t.PoissonAttempts = d.PoissonAttempts
	}
	if t.MaxCandidates <= 0 {
		t.MaxCandidates = d.MaxCandidates
	}
	if t.MinDistanceFloor <= 0 {
		t.MinDistanceFloor = d.MinDistanceFloor
	}
	if t.DefaultMinDistance <= 0 {
		t.DefaultMinDistance = d.DefaultMinDistance
	}
	if t.SeedRadiusFraction <= 0 || t.SeedRadiusFraction > 1 {
		t.SeedRadiusFraction = d.SeedRadiusFraction
	}
	return t
}
