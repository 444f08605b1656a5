package galaxy

import (
	"math"
	"strconv"
	"strings"

	"github.com/stellarweave/galaxysim/pkg/pools"
	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// Cluster placement tuning. Radius maps compatibility onto distance from
// the center (closer = more compatible); the bounds keep every node
// inside the visible scene.
const (
	clusterBaseRadius = 15.0
	clusterRadiusSpan = 60.0
	clusterHeightSpan = 20.0

	clusterMinSeparation = 8.0
	clusterRelaxPasses   = 10

	clusterBoundMin = 8.0
	clusterBoundMax = 120.0
)

// clusterGroup is a set of nodes sharing an identical trait vector.
type clusterGroup struct {
	traits  trait.Vector
	members []int // indices into the node slice
	base    space.Vec3
}

// groupKey builds an exact equality key for a trait vector. The full
// formatted values are used rather than the hash so hash collisions can
// never merge distinct groups.
func groupKey(v trait.Vector) string {
	var b strings.Builder
	for i, val := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	}
	return b.String()
}

// PlaceClusters computes a deterministic resting arrangement without
// iterative force settling: nodes with identical traits form a group, each
// group gets a polar position derived from its trait hash and its
// compatibility-implied radius, members spread on a small local circle,
// and overlapping groups are separated by a bounded pairwise relaxation.
//
// Calling it twice with identical inputs yields identical output. The
// returned buffer is pooled and indexed to match node ordering (the
// central node's entry is the origin); it also reports the group count.
func PlaceClusters(nodes []*Node, prefs trait.Vector) ([]space.Vec3, int) {
	positions := pools.GetVec3(len(nodes))

	// Partition non-central nodes by exact trait equality, preserving
	// first-seen order so the layout is stable across runs.
	byKey := make(map[string]*clusterGroup)
	var groups []*clusterGroup
	for i, n := range nodes {
		if n.IsCentral {
			positions[i] = space.Zero
			continue
		}
		key := groupKey(n.Traits)
		g, ok := byKey[key]
		if !ok {
			g = &clusterGroup{traits: n.Traits}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, i)
	}

	// Base position per group: radius from compatibility, angle and
	// height from the trait hashes.
	for _, g := range groups {
		compat := trait.Compatibility(prefs, g.traits)
		radius := clusterBaseRadius + (1-compat)*clusterRadiusSpan

		angle := float64(trait.Hash(g.traits)%360) * math.Pi / 180.0
		height := (float64(trait.HashReversed(g.traits)%100)/100.0)*2*clusterHeightSpan - clusterHeightSpan

		g.base = space.Vec3{
			X: radius * math.Cos(angle),
			Y: height,
			Z: radius * math.Sin(angle),
		}
	}

	// Pairwise declustering: overlapping groups push the later group
	// away along the line between bases, weighted by trait dissimilarity.
	for pass := 0; pass < clusterRelaxPasses; pass++ {
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				a, b := groups[i], groups[j]
				delta := b.base.Sub(a.base)
				dist := delta.Length()
				if dist >= 2*clusterMinSeparation {
					continue
				}

				dir := delta.Normalize()
				if dist == 0 {
					// Coincident bases have no direction; pick a
					// deterministic one.
					dir = space.Vec3{X: 1}
				}

				overlap := 2*clusterMinSeparation - dist
				weight := 1 - trait.Similarity(a.traits, b.traits)
				b.base = b.base.Add(dir.Scale(overlap * 0.5 * weight))
			}
		}
	}

	// Member placement: single members sit on the base; larger groups
	// spread on a secondary circle with alternating vertical offsets to
	// reduce visual overlap.
	for _, g := range groups {
		if len(g.members) == 1 {
			positions[g.members[0]] = g.base
			continue
		}

		angleStep := 2 * math.Pi / float64(len(g.members))
		for k, idx := range g.members {
			subRadius := 2.0 + 0.4*float64(k)
			angle := angleStep * float64(k)
			lift := 0.75
			if k%2 == 1 {
				lift = -0.75
			}
			positions[idx] = g.base.Add(space.Vec3{
				X: subRadius * math.Cos(angle),
				Y: lift,
				Z: subRadius * math.Sin(angle),
			})
		}
	}

	// Bound the scene: every non-central node stays within the radial
	// shell.
	for i, n := range nodes {
		if n.IsCentral {
			continue
		}
		positions[i] = positions[i].ClampLength(clusterBoundMin, clusterBoundMax)
	}

	return positions, len(groups)
}
