// Package galaxy implements the simulation core: the node model, the owned
// node store, the kinematic integrator, the equilibrium solver, the
// deterministic cluster placement, and the driver that orchestrates them
// per tick. Rendering, camera work, and pointer hit-testing live outside
// this package and consume it only through snapshots and the store's
// update API.
package galaxy

import (
	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// Node is a single entity in the galaxy. Exactly one node in a node-set
// has IsCentral set; that node is pinned to the origin and acts as the
// force anchor for every other node.
type Node struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Traits     trait.Vector `json:"traits"`
	TraitNames []string     `json:"traitNames,omitempty"`

	Position space.Vec3 `json:"position"`
	Velocity space.Vec3 `json:"velocity"`

	Radius    float64 `json:"radius"`
	Color     string  `json:"color"`
	IsCentral bool    `json:"isCentral"`

	// Compatibility is the cached score against the current central
	// preferences. Always 1 for the central node itself.
	Compatibility float64 `json:"compatibility"`
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	out := *n
	out.Traits = n.Traits.Clone()
	if n.TraitNames != nil {
		out.TraitNames = make([]string, len(n.TraitNames))
		copy(out.TraitNames, n.TraitNames)
	}
	return &out
}

// centralIndex returns the index of the central node, or -1 when the set
// has none (a transient state during wholesale replacement).
func centralIndex(nodes []*Node) int {
	for i, n := range nodes {
		if n.IsCentral {
			return i
		}
	}
	return -1
}
