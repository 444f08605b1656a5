package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/metrics"
	"github.com/stellarweave/galaxysim/pkg/space"
)

type testEnv struct {
	server *Server
	store  *galaxy.Store
	driver *galaxy.Driver
}

func newTestEnv(t *testing.T, mode galaxy.Mode, strategy galaxy.Strategy) *testEnv {
	t.Helper()
	store, err := galaxy.NewStore(galaxy.GenerateNodes(12, 4, nil, 42))
	require.NoError(t, err)
	reg := metrics.NewRegistry()
	driver := galaxy.NewDriver(store, galaxy.DefaultPhysicsConfig(), mode, strategy, nil, reg)
	return &testEnv{
		server: NewServer(store, driver, strategy, reg, nil, 0),
		store:  store,
		driver: driver,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)
	rec := env.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 12, resp.Nodes)
	assert.Equal(t, "continuous", resp.Mode)
}

func TestSnapshotEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)
	env.driver.Tick(time.Now())

	rec := env.do(t, http.MethodGet, "/snapshot", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[galaxy.Snapshot](t, rec)
	assert.Len(t, snap.Nodes, 12)
	assert.Len(t, snap.Preferences, 4)
	assert.Equal(t, galaxy.ModeContinuous, snap.Mode)

	rec = env.do(t, http.MethodPost, "/snapshot", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestConfigRoundTrip(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)

	rec := env.do(t, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ConfigResponse](t, rec)
	assert.Equal(t, galaxy.DefaultPhysicsConfig(), resp.Physics)

	update := ConfigRequest{Physics: resp.Physics, Mode: "static"}
	update.Physics.Attraction = 55
	rec = env.do(t, http.MethodPut, "/config", update)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 55.0, env.driver.Config().Attraction)
	assert.Equal(t, galaxy.ModeStatic, env.driver.Mode())
}

func TestConfigRejectsInvalid(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)

	bad := ConfigRequest{Physics: galaxy.DefaultPhysicsConfig()}
	bad.Physics.Damping = 0
	rec := env.do(t, http.MethodPut, "/config", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	badMode := ConfigRequest{Physics: galaxy.DefaultPhysicsConfig(), Mode: "warp"}
	rec = env.do(t, http.MethodPut, "/config", badMode)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreferencesEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)

	rec := env.do(t, http.MethodPut, "/preferences", PreferencesRequest{
		Preferences: []float64{10, 20, 30, 40},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []float64{10, 20, 30, 40}, []float64(env.store.Preferences()))

	// Wrong length is rejected
	rec = env.do(t, http.MethodPut, "/preferences", PreferencesRequest{
		Preferences: []float64{10, 20},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Out-of-domain values are rejected
	rec = env.do(t, http.MethodPut, "/preferences", PreferencesRequest{
		Preferences: []float64{10, 20, 30, 400},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCentralEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)
	snap := env.store.Snapshot()
	target := snap.Nodes[3]

	rec := env.do(t, http.MethodPost, "/central", CentralRequest{NodeID: target.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, target.Traits, env.store.Preferences())

	rec = env.do(t, http.MethodPost, "/central", CentralRequest{NodeID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTraitsEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)
	id := env.store.Snapshot().Nodes[2].ID

	rec := env.do(t, http.MethodPut, "/traits", TraitsRequest{
		NodeID: id,
		Traits: []float64{1, 2, 3, 4},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []float64{1, 2, 3, 4}, []float64(env.store.Snapshot().Nodes[2].Traits))

	rec = env.do(t, http.MethodPut, "/traits", TraitsRequest{
		NodeID: uuid.New(),
		Traits: []float64{1, 2, 3, 4},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDragEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)
	snap := env.store.Snapshot()
	id := snap.Nodes[1].ID

	rec := env.do(t, http.MethodPost, "/drag", DragRequest{NodeID: id, Action: DragBegin})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, env.store.Dragged())

	pos := space.Vec3{X: 1, Y: 2, Z: 3}
	rec = env.do(t, http.MethodPost, "/drag", DragRequest{NodeID: id, Action: DragMove, Position: pos})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pos, env.store.Snapshot().Nodes[1].Position)

	rec = env.do(t, http.MethodPost, "/drag", DragRequest{NodeID: id, Action: DragEnd})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uuid.Nil, env.store.Dragged())

	rec = env.do(t, http.MethodPost, "/drag", DragRequest{NodeID: id, Action: "shake"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The central node cannot be dragged
	central := snap.Nodes[0].ID
	rec = env.do(t, http.MethodPost, "/drag", DragRequest{NodeID: central, Action: DragBegin})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEquilibriumEndpoints(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeStatic, galaxy.StrategyCluster)

	// Nothing cached yet: snap conflicts
	rec := env.do(t, http.MethodPost, "/equilibrium/snap", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	env.driver.Tick(time.Now())
	require.True(t, env.driver.Settled())

	rec = env.do(t, http.MethodPost, "/equilibrium/snap", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/equilibrium/invalidate", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.driver.Settled())
}

func TestRegenerateEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)

	rec := env.do(t, http.MethodPost, "/nodes/regenerate", map[string]any{
		"count":      30,
		"attributes": 6,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, env.store.NodeCount())
	assert.Equal(t, 6, env.store.AttributeCount())

	rec = env.do(t, http.MethodPost, "/nodes/regenerate", map[string]any{
		"count":      1,
		"attributes": 6,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 30, env.store.NodeCount())
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)
	env.driver.Tick(time.Now())

	rec := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "galaxysim_ticks_total")
}

func TestBodySizeLimit(t *testing.T) {
	env := newTestEnv(t, galaxy.ModeContinuous, galaxy.StrategyEquilibrium)

	big := bytes.Repeat([]byte("x"), 2<<20)
	req := httptest.NewRequest(http.MethodPut, "/preferences", bytes.NewReader(big))
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
