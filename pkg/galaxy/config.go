package galaxy

import "time"

// PhysicsConfig tunes the force model and integrator. A config update
// takes effect on the next simulation tick.
type PhysicsConfig struct {
	// Attraction scales the pull of every node toward the center.
	Attraction float64 `json:"attraction" yaml:"attraction" validate:"gte=0"`
	// Repulsion scales the push between non-central node pairs.
	Repulsion float64 `json:"repulsion" yaml:"repulsion" validate:"gte=0"`
	// Damping multiplies velocity after each position update; values
	// below 1 bleed energy out of the system so it settles.
	Damping float64 `json:"damping" yaml:"damping" validate:"gt=0,lte=1"`
	// MaxDistance bounds the interaction range.
	MaxDistance float64 `json:"maxDistance" yaml:"max_distance" validate:"gt=0"`
	// MinDistance clamps pair distances so coincident nodes never
	// produce a divide-by-zero or a force spike.
	MinDistance float64 `json:"minDistance" yaml:"min_distance" validate:"gt=0"`
}

// DefaultPhysicsConfig returns the tuning used when the caller supplies
// nothing.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Attraction:  30.0,
		Repulsion:   18.0,
		Damping:     0.92,
		MaxDistance: 150.0,
		MinDistance: 0.5,
	}
}

// Mode selects how the driver arranges nodes.
type Mode string

const (
	// ModeContinuous runs the free-force integrator every tick.
	ModeContinuous Mode = "continuous"
	// ModeStatic computes a resting arrangement once, then eases live
	// positions toward it.
	ModeStatic Mode = "static"
)

// Strategy selects how a static-mode resting arrangement is produced.
type Strategy string

const (
	// StrategyEquilibrium iterates the force model from rest until it
	// settles (bounded synthetic steps).
	StrategyEquilibrium Strategy = "equilibrium"
	// StrategyCluster places nodes deterministically by trait grouping
	// with no iteration.
	StrategyCluster Strategy = "cluster"
)

// Integration constants. These are tuning values, not caller-visible
// configuration; they match the behavior the layout was calibrated for.
const (
	// MaxTickDelta caps dt so a stalled frame cannot produce a force
	// spike when ticks resume.
	MaxTickDelta = 33 * time.Millisecond

	// SolveStepDelta is the synthetic timestep for equilibrium solving.
	SolveStepDelta = 1.0 / 60.0

	// SolveTimeout aborts an equilibrium solve that runs away; the cache
	// stays empty so the next tick retries.
	SolveTimeout = 10 * time.Second

	// SolveStepsPerTick bounds how many solver steps run inside one
	// driver tick so a solve never blocks the render loop.
	SolveStepsPerTick = 25

	// ReturnSpeed is the maximum closing speed, in units per second,
	// when easing a node toward its cached equilibrium position.
	ReturnSpeed = 2.0

	// ReturnEpsilon is the snap distance for return-to-target motion.
	ReturnEpsilon = 0.1
)
