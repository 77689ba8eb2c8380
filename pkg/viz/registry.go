// Package viz collects computed safe points for an external renderer.
// Nothing in this package feeds data back into engine results.
package viz

import (
	"sync"
	"time"

	"github.com/raidkit/safezone/pkg/core"
)

// Sink receives the points produced by a query. Implementations must not block.
type Sink interface {
	Report(points []core.WPos, at time.Time)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(points []core.WPos, at time.Time)

// Report calls f.
func (f SinkFunc) Report(points []core.WPos, at time.Time) {
	f(points, at)
}

// Report is the most recent set of points delivered to a named sink.
type Report struct {
	Points []core.WPos
	At     time.Time
}

// Registry keeps the latest report of every registered sink for the renderer to draw.
type Registry struct {
	mu      sync.RWMutex
	reports map[string]Report
	live    map[string]bool
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		reports: make(map[string]Report),
		live:    make(map[string]bool),
	}
}

// Register creates a sink that stores its reports under name.
// Registering an existing name returns a sink sharing the same slot.
func (r *Registry) Register(name string) *NamedSink {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[name] = true
	return &NamedSink{registry: r, name: name}
}

// Unregister drops the name and its last report. Sinks bound to it become no-ops.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, name)
	delete(r.reports, name)
}

// Latest returns the last report stored under name.
func (r *Registry) Latest(name string) (Report, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[name]
	return rep, ok
}

// Names lists registered sink names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.live))
	for n := range r.live {
		names = append(names, n)
	}
	return names
}

// Reset drops all registrations and reports.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = make(map[string]Report)
	r.live = make(map[string]bool)
}

func (r *Registry) store(name string, rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.live[name] {
		return
	}
	r.reports[name] = rep
}

// NamedSink is a Sink bound to one registry slot.
type NamedSink struct {
	registry *Registry
	name     string
}

// Name returns the slot name.
func (s *NamedSink) Name() string {
	return s.name
}

// Report stores a copy of points, replacing the previous report.
func (s *NamedSink) Report(points []core.WPos, at time.Time) {
	s.registry.store(s.name, Report{
		Points: append([]core.WPos(nil), points...),
		At:     at,
	})
}
