package galaxy

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// Store errors.
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrNoCentralNode = errors.New("node set must contain exactly one central node")
	ErrRaggedTraits  = errors.New("trait vector length must be uniform across the node set")
)

// Store owns the live node set and the central preference vector. All
// mutation goes through its explicit update API; consumers either poll
// Snapshot or subscribe to per-tick publications. There is no shared
// mutable global: the driver is the only component that touches kinematic
// state, and it does so through the store.
type Store struct {
	mu      sync.RWMutex
	nodes   []*Node
	prefs   trait.Vector
	dragged uuid.UUID

	// version increments on every change that invalidates a computed
	// equilibrium: node count, attribute count, central preferences, or
	// central node identity.
	version uint64

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

// NewStore creates a store around an initial node set. The set must
// contain exactly one central node and uniform trait-vector lengths.
// Central preferences start as the central node's own traits.
func NewStore(nodes []*Node) (*Store, error) {
	s := &Store{subs: make(map[int]chan Snapshot)}
	if err := s.ReplaceNodes(nodes); err != nil {
		return nil, err
	}
	return s, nil
}

// validateSet checks the node-set invariants.
func validateSet(nodes []*Node) error {
	central := 0
	attrLen := -1
	for _, n := range nodes {
		if n.IsCentral {
			central++
		}
		if attrLen == -1 {
			attrLen = len(n.Traits)
		} else if len(n.Traits) != attrLen {
			return ErrRaggedTraits
		}
	}
	if central != 1 {
		return ErrNoCentralNode
	}
	return nil
}

// ReplaceNodes swaps in a wholly new node set (used when node count or
// attribute count changes). Preferences resynchronize to the new central
// node's traits and every compatibility score is recomputed.
func (s *Store) ReplaceNodes(nodes []*Node) error {
	if err := validateSet(nodes); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = nodes
	ci := centralIndex(nodes)
	nodes[ci].Position = space.Zero
	nodes[ci].Velocity = space.Zero
	s.prefs = nodes[ci].Traits.Clone()
	s.dragged = uuid.Nil
	s.recalculateLocked()
	s.version++
	return nil
}

// recalculateLocked refreshes every cached compatibility score against the
// current preferences. The central node always scores 1.
func (s *Store) recalculateLocked() {
	for _, n := range s.nodes {
		if n.IsCentral {
			n.Compatibility = 1
			continue
		}
		n.Compatibility = trait.Compatibility(s.prefs, n.Traits)
	}
}

// SetPreferences replaces the central preference vector, recomputes all
// compatibility scores, and invalidates any computed equilibrium.
func (s *Store) SetPreferences(prefs trait.Vector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = prefs.Clone().Clamp()
	s.recalculateLocked()
	s.version++
}

// RecalculateCompatibilities recomputes and republishes compatibility for
// every non-central node against the given central traits. Equivalent to
// SetPreferences; exposed under the collaborator-facing name.
func (s *Store) RecalculateCompatibilities(centralTraits trait.Vector) {
	s.SetPreferences(centralTraits)
}

// Preferences returns a copy of the central preference vector.
func (s *Store) Preferences() trait.Vector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// SetCentral reassigns the central node by id. The previous central node
// becomes an ordinary node; the new one is pinned to the origin and
// preferences resynchronize to its trait vector.
func (s *Store) SetCentral(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findLocked(id)
	if target == nil {
		return ErrNodeNotFound
	}
	if target.IsCentral {
		return nil
	}

	for _, n := range s.nodes {
		n.IsCentral = false
	}
	target.IsCentral = true
	target.Position = space.Zero
	target.Velocity = space.Zero
	if s.dragged == id {
		s.dragged = uuid.Nil
	}

	s.prefs = target.Traits.Clone()
	s.recalculateLocked()
	s.version++
	return nil
}

// UpdateTraits replaces a node's trait values (clamped to the valid
// domain) and refreshes its compatibility score. Editing traits does not
// invalidate a computed equilibrium; only preference, central, or count
// changes do.
func (s *Store) UpdateTraits(id uuid.UUID, values trait.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findLocked(id)
	if n == nil {
		return ErrNodeNotFound
	}
	if len(values) != len(n.Traits) {
		return ErrRaggedTraits
	}

	n.Traits = values.Clone().Clamp()
	if n.IsCentral {
		// The central node's own profile is the preference source.
		s.prefs = n.Traits.Clone()
		s.recalculateLocked()
		s.version++
		return nil
	}
	n.Compatibility = trait.Compatibility(s.prefs, n.Traits)
	return nil
}

// BeginDrag marks a node as interactively dragged. While dragged, the
// node is excluded from force accumulation and its position is driven
// externally through DragTo. The central node cannot be dragged.
func (s *Store) BeginDrag(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findLocked(id)
	if n == nil {
		return ErrNodeNotFound
	}
	if n.IsCentral {
		return ErrNodeNotFound
	}
	s.dragged = id
	n.Velocity = space.Zero
	return nil
}

// DragTo writes the externally-driven position of the dragged node. The
// drag is the single authoritative position source for that node, so the
// write is direct and velocity stays zero.
func (s *Store) DragTo(id uuid.UUID, pos space.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragged != id {
		return ErrNodeNotFound
	}
	n := s.findLocked(id)
	if n == nil {
		s.dragged = uuid.Nil
		return ErrNodeNotFound
	}
	n.Position = pos
	n.Velocity = space.Zero
	return nil
}

// EndDrag releases the dragged node with zero velocity so no residual
// momentum carries over. Releasing a node that is not dragged is a no-op.
func (s *Store) EndDrag(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragged != id {
		return
	}
	s.dragged = uuid.Nil
	if n := s.findLocked(id); n != nil {
		n.Velocity = space.Zero
	}
}

// Dragged returns the id of the node under drag, or uuid.Nil.
func (s *Store) Dragged() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragged
}

// NodeCount returns the number of nodes in the set.
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// AttributeCount returns the uniform trait-vector length.
func (s *Store) AttributeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.nodes) == 0 {
		return 0
	}
	return len(s.nodes[0].Traits)
}

// Version returns the equilibrium-invalidation counter. The driver
// compares it between ticks to know when a cached layout went stale.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// findLocked returns the node with the given id. Caller holds the lock.
func (s *Store) findLocked(id uuid.UUID) *Node {
	for _, n := range s.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// mutate runs fn with exclusive access to the node slice, the preference
// vector, and the current drag target. The driver's tick path uses this
// to integrate in place without copying the set.
func (s *Store) mutate(fn func(nodes []*Node, prefs trait.Vector, dragged uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.nodes, s.prefs, s.dragged)
}

// Subscribe registers a consumer for per-tick snapshots. Slow consumers
// miss snapshots rather than stalling the tick. The returned cancel
// function closes the channel.
func (s *Store) Subscribe(buffer int) (<-chan Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, buffer)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publish fans a snapshot out to every subscriber without blocking.
func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
