package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.TicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "galaxysim_ticks_total",
			Help: "Total number of simulation ticks processed",
		},
	)

	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "galaxysim_tick_duration_seconds",
			Help:    "Wall-clock time spent in one simulation tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.033, 0.1},
		},
	)

	r.NodesCurrent = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxysim_nodes",
			Help: "Number of nodes in the current node set",
		},
	)

	r.AttributesCurrent = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxysim_attributes",
			Help: "Trait-vector length of the current node set",
		},
	)

	r.ConfigUpdates = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "galaxysim_config_updates_total",
			Help: "Total number of physics config updates applied",
		},
	)

	r.SnapshotsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "galaxysim_snapshots_published_total",
			Help: "Total number of snapshots published to consumers",
		},
	)
}
