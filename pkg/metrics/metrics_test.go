package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.TicksTotal == nil {
		t.Error("TicksTotal not initialized")
	}
	if r.SolvesTotal == nil {
		t.Error("SolvesTotal not initialized")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

// gatherMetric finds a metric family by name in the gathered output.
func gatherMetric(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Prometheus().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRecordTick(t *testing.T) {
	r := NewRegistry()

	r.RecordTick(2 * time.Millisecond)
	r.RecordTick(5 * time.Millisecond)

	mf := gatherMetric(t, r, "galaxysim_ticks_total")
	if mf == nil {
		t.Fatal("ticks_total not gathered")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("ticks_total = %f, want 2", got)
	}
}

func TestRecordSolve(t *testing.T) {
	r := NewRegistry()

	r.RecordSolve(SolveCompleted, 120, 50*time.Millisecond)
	r.RecordSolve(SolveAborted, 30, 10*time.Second)

	mf := gatherMetric(t, r, "galaxysim_equilibrium_solves_total")
	if mf == nil {
		t.Fatal("solves_total not gathered")
	}
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 labeled series, got %d", len(mf.GetMetric()))
	}

	// Aborted solves must not pollute the duration histogram
	duration := gatherMetric(t, r, "galaxysim_equilibrium_solve_duration_seconds")
	if duration == nil {
		t.Fatal("solve_duration not gathered")
	}
	if got := duration.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("solve_duration samples = %d, want 1", got)
	}
}

func TestRecordPlacement(t *testing.T) {
	r := NewRegistry()

	r.RecordPlacement(7)

	mf := gatherMetric(t, r, "galaxysim_cluster_placements_total")
	if mf == nil {
		t.Fatal("placements_total not gathered")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("placements_total = %f, want 1", got)
	}
}

func TestUpdateNodeSet(t *testing.T) {
	r := NewRegistry()

	r.UpdateNodeSet(40, 6)

	nodes := gatherMetric(t, r, "galaxysim_nodes")
	if nodes == nil {
		t.Fatal("nodes gauge not gathered")
	}
	if got := nodes.GetMetric()[0].GetGauge().GetValue(); got != 40 {
		t.Errorf("nodes gauge = %f, want 40", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/snapshot", "200", 3*time.Millisecond)

	mf := gatherMetric(t, r, "galaxysim_http_requests_total")
	if mf == nil {
		t.Fatal("http_requests_total not gathered")
	}
	m := mf.GetMetric()[0]
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("http_requests_total = %f, want 1", got)
	}
}
