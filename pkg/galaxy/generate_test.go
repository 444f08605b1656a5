package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarweave/galaxysim/pkg/space"
	"github.com/stellarweave/galaxysim/pkg/trait"
)

func TestGenerateNodes(t *testing.T) {
	nodes := GenerateNodes(20, 5, []string{"a", "b", "c", "d", "e"}, 42)
	require.Len(t, nodes, 20)
	require.NoError(t, validateSet(nodes))

	assert.True(t, nodes[0].IsCentral)
	assert.Equal(t, space.Zero, nodes[0].Position)

	for i, n := range nodes {
		assert.Len(t, n.Traits, 5)
		for _, v := range n.Traits {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, trait.MaxValue)
		}
		if i == 0 {
			continue
		}
		d := n.Position.Length()
		assert.GreaterOrEqual(t, d, 30.0, "node %d too close to the center", i)
		assert.LessOrEqual(t, d, 70.0, "node %d outside the spawn shell", i)
	}
}

func TestGenerateNodesSeeded(t *testing.T) {
	a := GenerateNodes(12, 4, nil, 7)
	b := GenerateNodes(12, 4, nil, 7)
	for i := range a {
		assert.Equal(t, a[i].Traits, b[i].Traits, "node %d traits differ across identical seeds", i)
		assert.Equal(t, a[i].Position, b[i].Position)
		assert.NotEqual(t, a[i].ID, b[i].ID, "ids stay unique across runs")
	}

	c := GenerateNodes(12, 4, nil, 8)
	same := true
	for i := range a {
		if !a[i].Traits.Equal(c[i].Traits) {
			same = false
		}
	}
	assert.False(t, same, "different seeds should produce different traits")
}
