package galaxy

import (
	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/force"
	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// Integrator advances node kinematic state over a timestep using the
// force model plus damping. It never allocates per tick and mutates the
// given nodes in place.
//
// A node under interactive drag is excluded from force accumulation,
// position integration, and damping; its position is driven externally
// and its velocity is held at zero so releasing the drag imparts no
// residual momentum. The central node never receives forces and is
// re-pinned to the origin after every pass.
type Integrator struct {
	cfg PhysicsConfig
}

// NewIntegrator creates an integrator with the given physics tuning.
func NewIntegrator(cfg PhysicsConfig) *Integrator {
	return &Integrator{cfg: cfg}
}

// SetConfig swaps the physics tuning; effective from the next step.
func (it *Integrator) SetConfig(cfg PhysicsConfig) {
	it.cfg = cfg
}

// Config returns the current physics tuning.
func (it *Integrator) Config() PhysicsConfig {
	return it.cfg
}

// Step advances one free-force tick: attraction toward the center,
// pairwise repulsion, then position integration and damping. prefs is the
// central preference vector; dragged identifies the node under
// interactive drag, if any (uuid.Nil for none).
func (it *Integrator) Step(nodes []*Node, prefs trait.Vector, dt float64, dragged uuid.UUID) {
	ci := centralIndex(nodes)

	// Phase 1: attraction toward the center. The central node is pinned
	// at the origin, so the origin is the anchor point.
	for _, n := range nodes {
		if n.IsCentral || n.ID == dragged {
			continue
		}
		f := force.Attraction(space.Zero, n.Position, trait.Compatibility(prefs, n.Traits), it.cfg.Attraction, it.cfg.MinDistance)
		n.Velocity = n.Velocity.Add(f.Scale(dt))
	}

	// Phase 2: pairwise repulsion between non-central nodes. Pairs
	// beyond the interaction range are skipped.
	maxSq := it.cfg.MaxDistance * it.cfg.MaxDistance
	for i := 0; i < len(nodes); i++ {
		a := nodes[i]
		if a.IsCentral || a.ID == dragged {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			if b.IsCentral || b.ID == dragged {
				continue
			}
			if b.Position.Sub(a.Position).LengthSq() > maxSq {
				continue
			}
			sim := trait.Similarity(a.Traits, b.Traits)
			onA, onB := force.Repulsion(a.Position, b.Position, sim, it.cfg.Repulsion, it.cfg.MinDistance)
			a.Velocity = a.Velocity.Add(onA.Scale(dt))
			b.Velocity = b.Velocity.Add(onB.Scale(dt))
		}
	}

	// Phase 3: integrate positions, then damp.
	for _, n := range nodes {
		if n.ID == dragged {
			n.Velocity = space.Zero
			continue
		}
		n.Position = n.Position.Add(n.Velocity.Scale(dt))
		n.Velocity = n.Velocity.Scale(it.cfg.Damping)
	}

	// Phase 4: the central node is always pinned to the origin.
	if ci >= 0 {
		nodes[ci].Position = space.Zero
		nodes[ci].Velocity = space.Zero
	}
}

// ReturnToTarget eases each node toward its cached equilibrium position
// at a fixed maximum closing speed, snapping when within ReturnEpsilon.
// targets is indexed to match node ordering. Dragged and central nodes
// are left alone (the central pin is still enforced).
func (it *Integrator) ReturnToTarget(nodes []*Node, targets []space.Vec3, dt float64, dragged uuid.UUID) {
	for i, n := range nodes {
		if n.IsCentral {
			n.Position = space.Zero
			n.Velocity = space.Zero
			continue
		}
		if n.ID == dragged || i >= len(targets) {
			continue
		}

		target := targets[i]
		if space.Distance(n.Position, target) <= ReturnEpsilon {
			n.Position = target
			n.Velocity = space.Zero
			continue
		}
		n.Position = n.Position.MoveToward(target, ReturnSpeed*dt)
		n.Velocity = space.Zero
	}
}
