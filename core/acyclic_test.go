package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphlayout/layered/core"
)

func TestMakeAcyclicBreaksCycle(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	a := g.AddNode(&core.Node{OrigID: "a"})
	b := g.AddNode(&core.Node{OrigID: "b"})
	c := g.AddNode(&core.Node{OrigID: "c"})
	g.AddEdge(&core.Edge{Source: a, Target: b})
	g.AddEdge(&core.Edge{Source: b, Target: c})
	backEdge := g.AddEdge(&core.Edge{Source: c, Target: a})

	st := core.MakeAcyclic(g)
	assert.NotNil(t, st)

	assertAcyclic(t, g)

	e := g.Edge(backEdge)
	assert.True(t, e.Reversed)
	assert.Equal(t, a, e.Source)
	assert.Equal(t, c, e.Target)

	core.Unacyclic(g, st)
	e = g.Edge(backEdge)
	assert.False(t, e.Reversed)
	assert.Equal(t, c, e.Source)
	assert.Equal(t, a, e.Target)
}

func TestMakeAcyclicExtractsSelfLoop(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	a := g.AddNode(&core.Node{OrigID: "a"})
	loop := g.AddEdge(&core.Edge{OrigID: "loop", Source: a, Target: a})

	core.MakeAcyclic(g)

	assert.Nil(t, g.Edge(loop))
	assert.Empty(t, g.OutEdges(a))
}

// assertAcyclic fails the test if g contains a directed cycle, via
// plain DFS coloring.
func assertAcyclic(t *testing.T, g *core.Graph) {
	t.Helper()
	const (
		white = iota
		gray
		black
	)
	color := make(map[core.NodeID]int)

	var visit func(v core.NodeID) bool
	visit = func(v core.NodeID) bool {
		color[v] = gray
		for _, eid := range g.OutEdges(v) {
			w := g.Edge(eid).Target
			switch color[w] {
			case gray:
				return false
			case white:
				if !visit(w) {
					return false
				}
			}
		}
		color[v] = black
		return true
	}

	for _, v := range g.Nodes() {
		if color[v] == white {
			if !visit(v) {
				t.Fatalf("graph contains a cycle reachable from node %d", v)
			}
		}
	}
}
