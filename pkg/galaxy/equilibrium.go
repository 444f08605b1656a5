package galaxy

import (
	"time"

	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/pools"
	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// maxSolveSteps bounds any equilibrium solve regardless of node count.
const maxSolveSteps = 200

// solveSteps returns the synthetic step budget for a node count.
func solveSteps(nodeCount int) int {
	steps := 50 + 2*nodeCount
	if steps > maxSolveSteps {
		return maxSolveSteps
	}
	return steps
}

// EquilibriumSolve estimates resting positions by iterating the force
// model from a zero-velocity start, without touching live node state.
// It is a step generator: the caller drives it by calling Step until it
// reports completion, and cancels it by simply not calling Step again.
// There is no background task.
//
// The solve works on shadow copies of the nodes, so live rendered
// positions are unaffected until the caller captures Result.
type EquilibriumSolve struct {
	shadow   []*Node
	prefs    trait.Vector
	integ    *Integrator
	remain   int
	deadline time.Time
	aborted  bool
	ran      int
}

// NewEquilibriumSolve prepares a solve over the given nodes. The nodes
// are cloned; velocities start at zero and the central node stays pinned
// to the origin throughout.
func NewEquilibriumSolve(nodes []*Node, prefs trait.Vector, cfg PhysicsConfig) *EquilibriumSolve {
	shadow := make([]*Node, len(nodes))
	for i, n := range nodes {
		c := n.Clone()
		c.Velocity = space.Zero
		if c.IsCentral {
			c.Position = space.Zero
		}
		shadow[i] = c
	}

	return &EquilibriumSolve{
		shadow:   shadow,
		prefs:    prefs.Clone(),
		integ:    NewIntegrator(cfg),
		remain:   solveSteps(len(nodes)),
		deadline: time.Now().Add(SolveTimeout),
	}
}

// Step advances the solve by one synthetic timestep. It returns true when
// the solve is finished, either because the step budget is spent or the
// wall-clock timeout hit (see Aborted).
func (s *EquilibriumSolve) Step() bool {
	if s.aborted || s.remain <= 0 {
		return true
	}
	if time.Now().After(s.deadline) {
		s.aborted = true
		return true
	}

	s.integ.Step(s.shadow, s.prefs, SolveStepDelta, uuid.Nil)
	s.remain--
	s.ran++
	return s.remain <= 0
}

// Aborted reports whether the solve hit its wall-clock timeout. An
// aborted solve has no result; the caller leaves its cache empty and
// retries on a later tick.
func (s *EquilibriumSolve) Aborted() bool {
	return s.aborted
}

// StepsRun returns how many synthetic steps have executed.
func (s *EquilibriumSolve) StepsRun() int {
	return s.ran
}

// Result captures the settled positions into a pooled buffer indexed to
// match the input node ordering (the central node's entry is the origin).
// Returns nil while the solve is unfinished or when it aborted. The
// caller owns the buffer and should return it with pools.PutVec3 when the
// cache is invalidated.
func (s *EquilibriumSolve) Result() []space.Vec3 {
	if s.aborted || s.remain > 0 {
		return nil
	}
	out := pools.GetVec3(len(s.shadow))
	for i, n := range s.shadow {
		out[i] = n.Position
	}
	return out
}
