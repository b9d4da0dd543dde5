package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Equal(t, 0, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Equal(t, 1, g.Len())
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.Empty(t, nodeA.deps)
	assert.Empty(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Equal(t, 1, g.Len())

	g.AddNode("b")
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.HasNode("b"))
	assert.False(t, g.HasNode("c"))
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("duplicate edge is ignored", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("a", "b"))

		assert.Equal(t, map[string]int{"a": 0, "b": 1}, g.InDegrees())
	})

	t.Run("self edge is accepted", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		require.NoError(t, g.AddEdge("a", "a"))
		assert.Equal(t, 1, g.InDegrees()["a"])
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		_, err = g.Dependents("dne")
		assert.ErrorContains(t, err, "node not found")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDependents_PreserveInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"root", "z", "m", "a"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("root", "z"))
	require.NoError(t, g.AddEdge("root", "m"))
	require.NoError(t, g.AddEdge("root", "a"))

	dependents, err := g.Dependents("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, dependents)
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
		assert.Nil(t, g.FindCycle())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle
		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
		assert.Equal(t, []string{"a", "b", "a"}, g.FindCycle())
	})

	t.Run("self cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		require.NoError(t, g.AddEdge("a", "a"))
		assert.Equal(t, []string{"a", "a"}, g.FindCycle())
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected: a -> a")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a")) // Cycle back to the start
		assert.Equal(t, []string{"a", "b", "c", "d", "a"}, g.FindCycle())
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		assert.Equal(t, []string{"y", "z", "y"}, g.FindCycle())
	})
}
