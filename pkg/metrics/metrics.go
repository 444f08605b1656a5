package metrics

import "time"

// Solve outcome labels.
const (
	SolveCompleted = "completed"
	SolveAborted   = "aborted"
	SolveDropped   = "dropped"
)

// RecordTick records one driver tick and its duration.
func (r *Registry) RecordTick(duration time.Duration) {
	r.TicksTotal.Inc()
	r.TickDuration.Observe(duration.Seconds())
}

// RecordSolve records the outcome of an equilibrium solve.
func (r *Registry) RecordSolve(status string, steps int, duration time.Duration) {
	r.SolvesTotal.WithLabelValues(status).Inc()
	if status == SolveCompleted {
		r.SolveDuration.Observe(duration.Seconds())
		r.SolveSteps.Observe(float64(steps))
	}
}

// RecordPlacement records a deterministic cluster placement.
func (r *Registry) RecordPlacement(groups int) {
	r.PlacementsTotal.Inc()
	r.PlacementGroups.Observe(float64(groups))
}

// UpdateNodeSet updates the node-set gauges after a replacement.
func (r *Registry) UpdateNodeSet(nodes, attributes int) {
	r.NodesCurrent.Set(float64(nodes))
	r.AttributesCurrent.Set(float64(attributes))
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
