package safezone

import (
	"time"

	"github.com/raidkit/safezone/pkg/core"
	"github.com/raidkit/safezone/pkg/shape"
)

// Immediately is the activation instant of a zone that is always active.
var Immediately = time.Time{}

// Zone is a named danger region that becomes active at Activation.
// Zones are values: replace them instead of mutating.
type Zone struct {
	Name       string
	Shape      shape.Shape
	Activation time.Time
}

// NewZone creates a zone that is active from the given instant.
func NewZone(name string, s shape.Shape, activation time.Time) Zone {
	return Zone{Name: name, Shape: s, Activation: activation}
}

// NewImmediateZone creates a zone that is always active.
func NewImmediateZone(name string, s shape.Shape) Zone {
	return Zone{Name: name, Shape: s, Activation: Immediately}
}

// Distance forwards to the wrapped shape.
func (z Zone) Distance(p core.WPos) float64 {
	return z.Shape.Distance(p)
}

// Contains forwards to the wrapped shape.
func (z Zone) Contains(p core.WPos) bool {
	return shape.Contains(z.Shape, p)
}

// IsActive reports whether now is at or after the activation instant.
// A zero activation is active at every instant.
func (z Zone) IsActive(now time.Time) bool {
	return z.Activation.IsZero() || !now.Before(z.Activation)
}
