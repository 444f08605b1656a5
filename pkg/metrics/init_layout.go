package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.SolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "galaxysim_equilibrium_solves_total",
			Help: "Total number of equilibrium solves by outcome",
		},
		[]string{"status"},
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "galaxysim_equilibrium_solve_duration_seconds",
			Help:    "Wall-clock time from solve start to capture",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.SolveSteps = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "galaxysim_equilibrium_solve_steps",
			Help:    "Synthetic steps executed per equilibrium solve",
			Buckets: []float64{25, 50, 100, 150, 200},
		},
	)

	r.PlacementsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "galaxysim_cluster_placements_total",
			Help: "Total number of deterministic cluster placements computed",
		},
	)

	r.PlacementGroups = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "galaxysim_cluster_placement_groups",
			Help:    "Trait groups per cluster placement",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	r.CacheInvalidations = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "galaxysim_equilibrium_invalidations_total",
			Help: "Total number of equilibrium cache invalidations",
		},
	)
}
