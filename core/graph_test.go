package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphlayout/layered/core"
)

func TestGraphAddRemove(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	a := g.AddNode(&core.Node{OrigID: "a"})
	b := g.AddNode(&core.Node{OrigID: "b"})
	eid := g.AddEdge(&core.Edge{Source: a, Target: b})

	assert.Equal(t, []core.EdgeID{eid}, g.OutEdges(a))
	assert.Equal(t, []core.EdgeID{eid}, g.InEdges(b))
	assert.Equal(t, []core.NodeID{b}, g.Successors(a))
	assert.Equal(t, []core.NodeID{a}, g.Predecessors(b))

	g.RemoveEdge(eid)
	assert.Empty(t, g.OutEdges(a))
	assert.Empty(t, g.InEdges(b))

	g.RemoveNode(a)
	assert.Nil(t, g.Node(a))
	id, ok := g.NodeByOrigID("a")
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestGraphParentChild(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	parent := g.AddNode(&core.Node{OrigID: "p"})
	child := g.AddNode(&core.Node{OrigID: "c"})

	g.SetParent(child, parent)
	assert.Equal(t, parent, g.Parent(child))
	assert.Equal(t, []core.NodeID{child}, g.Children(parent))

	g.SetParent(child, 0)
	assert.Equal(t, core.NodeID(0), g.Parent(child))
	assert.Empty(t, g.Children(parent))
}

func TestConnectedComponents(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	a := g.AddNode(&core.Node{OrigID: "a"})
	b := g.AddNode(&core.Node{OrigID: "b"})
	c := g.AddNode(&core.Node{OrigID: "c"})
	g.AddEdge(&core.Edge{Source: a, Target: b})

	comps := g.ConnectedComponents()
	assert.Len(t, comps, 2)

	sizes := map[int]int{}
	for _, comp := range comps {
		sizes[len(comp)]++
	}
	assert.Equal(t, map[int]int{2: 1, 1: 1}, sizes)
	_ = c
}

func TestFilter(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	g.AddNode(&core.Node{OrigID: "a", Dummy: true})
	g.AddNode(&core.Node{OrigID: "b"})

	dummies := g.Filter(func(n *core.Node) bool { return n.Dummy })
	assert.Len(t, dummies, 1)
}
