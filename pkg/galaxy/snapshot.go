package galaxy

import (
	"time"

	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// NodeState is one node's published kinematic and display state.
type NodeState struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Traits        trait.Vector `json:"traits"`
	TraitNames    []string     `json:"traitNames,omitempty"`
	Position      space.Vec3   `json:"position"`
	Velocity      space.Vec3   `json:"velocity"`
	Radius        float64      `json:"radius"`
	Color         string       `json:"color"`
	IsCentral     bool         `json:"isCentral"`
	Compatibility float64      `json:"compatibility"`
}

// Snapshot is the per-tick view of the whole node set handed to
// consumers (rendering, tooltips, stream subscribers). It is a deep copy:
// holding one never races with subsequent ticks.
type Snapshot struct {
	Tick        uint64       `json:"tick"`
	Time        time.Time    `json:"time"`
	Mode        Mode         `json:"mode"`
	Settled     bool         `json:"settled"`
	Preferences trait.Vector `json:"preferences"`
	Nodes       []NodeState  `json:"nodes"`
}

// Snapshot captures the current node set. Tick metadata is filled by the
// driver's publish path; direct callers get zero tick fields.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Preferences: s.prefs.Clone(),
		Nodes:       make([]NodeState, len(s.nodes)),
	}
	for i, n := range s.nodes {
		state := NodeState{
			ID:            n.ID,
			Name:          n.Name,
			Traits:        n.Traits.Clone(),
			Position:      n.Position,
			Velocity:      n.Velocity,
			Radius:        n.Radius,
			Color:         n.Color,
			IsCentral:     n.IsCentral,
			Compatibility: n.Compatibility,
		}
		if n.TraitNames != nil {
			state.TraitNames = make([]string, len(n.TraitNames))
			copy(state.TraitNames, n.TraitNames)
		}
		snap.Nodes[i] = state
	}
	return snap
}
