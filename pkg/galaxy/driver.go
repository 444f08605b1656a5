package galaxy

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/logging"
	"github.com/stellarweave/galaxysim/pkg/metrics"
	"github.com/stellarweave/galaxysim/pkg/pools"
	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// Driver orchestrates the simulation tick by tick. In continuous mode it
// runs the free-force integrator every tick; in static mode it first
// produces a resting arrangement (equilibrium solve or deterministic
// cluster placement, one policy per deployment) and then eases live
// positions toward it. After every tick it publishes a snapshot to the
// store's subscribers.
//
// All kinematic mutation happens on the goroutine calling Tick; the
// driver adds no parallelism of its own.
type Driver struct {
	store *Store
	integ *Integrator

	mu          sync.Mutex
	mode        Mode
	strategy    Strategy
	pendingCfg  *PhysicsConfig
	cache       []space.Vec3
	solve       *EquilibriumSolve
	solveStart  time.Time
	seenVersion uint64
	tick        uint64
	lastTick    time.Time

	log logging.Logger
	reg *metrics.Registry
}

// NewDriver creates a driver over a store. mode and strategy pick the
// deployment's layout policy; reg may be shared with the HTTP shell.
func NewDriver(store *Store, cfg PhysicsConfig, mode Mode, strategy Strategy, log logging.Logger, reg *metrics.Registry) *Driver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	d := &Driver{
		store:    store,
		integ:    NewIntegrator(cfg),
		mode:     mode,
		strategy: strategy,
		log:      log.With(logging.Component("driver")),
		reg:      reg,
	}
	d.seenVersion = store.Version()
	reg.UpdateNodeSet(store.NodeCount(), store.AttributeCount())
	return d
}

// SetConfig stages a physics config update; it takes effect on the next
// tick.
func (d *Driver) SetConfig(cfg PhysicsConfig) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pendingCfg = &cfg
}

// Config returns the physics config currently in effect.
func (d *Driver) Config() PhysicsConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pendingCfg != nil {
		return *d.pendingCfg
	}
	return d.integ.Config()
}

// Mode returns the current layout mode.
func (d *Driver) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SetMode switches between continuous and static layout. Entering static
// mode starts from a clean cache.
func (d *Driver) SetMode(mode Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if mode == d.mode {
		return
	}
	d.mode = mode
	d.invalidateLocked()
}

// InvalidateEquilibrium clears the cached equilibrium positions, forcing
// recomputation on the next applicable tick.
func (d *Driver) InvalidateEquilibrium() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidateLocked()
}

func (d *Driver) invalidateLocked() {
	if d.cache != nil {
		pools.PutVec3(d.cache)
		d.cache = nil
		d.reg.CacheInvalidations.Inc()
	}
	if d.solve != nil {
		// Cancellation is cooperative: dropping the solve simply stops
		// the step calls.
		d.reg.RecordSolve(metrics.SolveDropped, d.solve.StepsRun(), 0)
		d.solve = nil
	}
}

// ForceSnapToEquilibrium immediately sets every node's live position to
// its cached equilibrium position. No-op while the cache is empty.
func (d *Driver) ForceSnapToEquilibrium() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cache == nil {
		return
	}
	cache := d.cache
	d.store.mutate(func(nodes []*Node, _ trait.Vector, _ uuid.UUID) {
		for i, n := range nodes {
			if i >= len(cache) {
				break
			}
			if n.IsCentral {
				n.Position = space.Zero
			} else {
				n.Position = cache[i]
			}
			n.Velocity = space.Zero
		}
	})
}

// Settled reports whether static mode has a resting arrangement cached.
func (d *Driver) Settled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache != nil
}

// Tick advances the simulation by one frame at the given wall-clock time
// and publishes the resulting snapshot.
func (d *Driver) Tick(now time.Time) {
	start := time.Now()

	d.mu.Lock()

	// A staged config update takes effect at the top of the tick.
	if d.pendingCfg != nil {
		d.integ.SetConfig(*d.pendingCfg)
		d.pendingCfg = nil
		d.reg.ConfigUpdates.Inc()
	}

	// Structural changes (counts, preferences, central identity) void
	// any computed equilibrium.
	if v := d.store.Version(); v != d.seenVersion {
		d.seenVersion = v
		d.invalidateLocked()
		d.reg.UpdateNodeSet(d.store.NodeCount(), d.store.AttributeCount())
	}

	// dt is clamped so a stalled frame cannot spike the forces.
	var dt float64
	if !d.lastTick.IsZero() {
		delta := now.Sub(d.lastTick)
		if delta > MaxTickDelta {
			delta = MaxTickDelta
		}
		if delta > 0 {
			dt = delta.Seconds()
		}
	}
	d.lastTick = now
	d.tick++

	switch {
	case d.mode == ModeStatic && d.cache == nil:
		d.advanceLayoutLocked()
	case d.mode == ModeStatic:
		cache := d.cache
		d.store.mutate(func(nodes []*Node, _ trait.Vector, dragged uuid.UUID) {
			d.integ.ReturnToTarget(nodes, cache, dt, dragged)
		})
	default:
		d.store.mutate(func(nodes []*Node, prefs trait.Vector, dragged uuid.UUID) {
			d.integ.Step(nodes, prefs, dt, dragged)
		})
	}

	tick := d.tick
	mode := d.mode
	settled := d.cache != nil
	d.mu.Unlock()

	snap := d.store.Snapshot()
	snap.Tick = tick
	snap.Time = now
	snap.Mode = mode
	snap.Settled = settled
	d.store.publish(snap)
	d.reg.SnapshotsTotal.Inc()
	d.reg.RecordTick(time.Since(start))
}

// advanceLayoutLocked works toward a resting arrangement: cluster
// placement finishes immediately, while an equilibrium solve advances a
// bounded number of steps per tick so it never blocks the frame.
// Kinematic integration is skipped for the tick either way.
func (d *Driver) advanceLayoutLocked() {
	if d.strategy == StrategyCluster {
		var positions []space.Vec3
		var groups int
		d.store.mutate(func(nodes []*Node, prefs trait.Vector, _ uuid.UUID) {
			positions, groups = PlaceClusters(nodes, prefs)
		})
		d.cache = positions
		d.reg.RecordPlacement(groups)
		d.log.Debug("cluster placement computed",
			logging.Tick(d.tick),
			logging.Int("groups", groups),
		)
		return
	}

	if d.solve == nil {
		d.store.mutate(func(nodes []*Node, prefs trait.Vector, _ uuid.UUID) {
			d.solve = NewEquilibriumSolve(nodes, prefs, d.integ.Config())
		})
		d.solveStart = time.Now()
	}

	done := false
	for i := 0; i < SolveStepsPerTick && !done; i++ {
		done = d.solve.Step()
	}
	if !done {
		return
	}

	if d.solve.Aborted() {
		// Leave the cache empty; the next tick starts a fresh solve.
		d.reg.RecordSolve(metrics.SolveAborted, d.solve.StepsRun(), time.Since(d.solveStart))
		d.log.Warn("equilibrium solve timed out",
			logging.Tick(d.tick),
			logging.Int("steps", d.solve.StepsRun()),
		)
		d.solve = nil
		return
	}

	d.cache = d.solve.Result()
	d.reg.RecordSolve(metrics.SolveCompleted, d.solve.StepsRun(), time.Since(d.solveStart))
	d.log.Debug("equilibrium solve completed",
		logging.Tick(d.tick),
		logging.Int("steps", d.solve.StepsRun()),
		logging.Duration("elapsed", time.Since(d.solveStart)),
	)
	d.solve = nil
}
