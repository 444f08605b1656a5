package galaxy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

// GenerateNodes builds a node set of the given size with random trait
// vectors. The first node is the central node; its traits double as the
// initial central preferences. A fixed seed reproduces the same set
// (ids aside), which keeps layouts comparable across runs.
func GenerateNodes(count, attributes int, traitNames []string, seed int64) []*Node {
	rng := rand.New(rand.NewSource(seed))
	nodes := make([]*Node, 0, count)

	for i := 0; i < count; i++ {
		traits := make(trait.Vector, attributes)
		for j := range traits {
			traits[j] = math.Round(rng.Float64() * trait.MaxValue)
		}

		n := &Node{
			ID:     uuid.New(),
			Name:   fmt.Sprintf("node-%02d", i),
			Traits: traits,
			Radius: 0.8 + rng.Float64()*0.7,
			Color:  hueColor(i, count),
		}
		if traitNames != nil {
			n.TraitNames = make([]string, len(traitNames))
			copy(n.TraitNames, traitNames)
		}
		if i == 0 {
			n.Name = "core"
			n.IsCentral = true
			n.Radius = 2.5
			n.Color = "#ffd75f"
			n.Position = space.Zero
		} else {
			// Scatter starting positions on a loose shell so the first
			// ticks do not begin from a singular pile-up.
			radius := 30 + rng.Float64()*40
			theta := rng.Float64() * 2 * math.Pi
			phi := math.Acos(2*rng.Float64() - 1)
			n.Position = space.Vec3{
				X: radius * math.Sin(phi) * math.Cos(theta),
				Y: radius * math.Cos(phi),
				Z: radius * math.Sin(phi) * math.Sin(theta),
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// hueColor spreads node colors evenly around the hue wheel.
func hueColor(i, count int) string {
	if count <= 0 {
		count = 1
	}
	h := float64(i) / float64(count) * 360
	r, g, b := hsvToRGB(h, 0.65, 0.95)
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
