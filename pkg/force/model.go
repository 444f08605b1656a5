// Package force implements the attraction/repulsion model that drives the
// galaxy layout. Both force kinds fall off with the inverse square of
// distance: strong pull/push at short range, stable orbit behavior at long
// range. Distances are clamped to a configurable minimum so coincident
// positions never divide by zero.
package force

import (
	"github.com/stellarweave/galaxysim/pkg/space"
)

// CompatibilityFloor is the minimum effective compatibility used when
// computing attraction. Fully incompatible nodes still receive a small
// pull toward the center; without it they drift off-screen permanently
// once repulsion pushes them past the interaction range.
const CompatibilityFloor = 0.1

// Attraction returns the force pulling a node toward the central node.
// Magnitude is k * compatibility / distance^2 with distance clamped to
// minDistance. The force always points from nodePos toward centralPos.
func Attraction(centralPos, nodePos space.Vec3, compatibility, k, minDistance float64) space.Vec3 {
	if compatibility < CompatibilityFloor {
		compatibility = CompatibilityFloor
	}

	delta := centralPos.Sub(nodePos)
	dist := delta.Length()
	if dist < minDistance {
		dist = minDistance
	}

	magnitude := k * compatibility / (dist * dist)
	return delta.Normalize().Scale(magnitude)
}

// Repulsion returns the equal-and-opposite forces pushing two non-central
// nodes apart. Dissimilar nodes repel harder: magnitude is
// k * (1 - similarity) / distance^2 with distance clamped to minDistance.
// The first return value applies to the node at posA, the second to the
// node at posB.
func Repulsion(posA, posB space.Vec3, similarity, k, minDistance float64) (space.Vec3, space.Vec3) {
	delta := posB.Sub(posA)
	dist := delta.Length()
	if dist < minDistance {
		dist = minDistance
	}

	magnitude := k * (1 - similarity) / (dist * dist)
	dir := delta.Normalize()

	onB := dir.Scale(magnitude)
	onA := onB.Scale(-1)
	return onA, onB
}
