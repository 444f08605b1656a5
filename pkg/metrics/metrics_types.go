// Package metrics exposes prometheus instrumentation for the simulation
// and its HTTP shell.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Simulation metrics
	TicksTotal        prometheus.Counter
	TickDuration      prometheus.Histogram
	NodesCurrent      prometheus.Gauge
	AttributesCurrent prometheus.Gauge
	ConfigUpdates     prometheus.Counter
	SnapshotsTotal    prometheus.Counter

	// Layout metrics
	SolvesTotal        *prometheus.CounterVec
	SolveDuration      prometheus.Histogram
	SolveSteps         prometheus.Histogram
	PlacementsTotal    prometheus.Counter
	PlacementGroups    prometheus.Histogram
	CacheInvalidations prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the shared registry instance
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initSimulationMetrics()
	r.initLayoutMetrics()
	r.initHTTPMetrics()

	return r
}

// Prometheus returns the underlying prometheus registry for the /metrics
// handler.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}
