package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphlayout/layered/core"
)

// runStages drives Build through Emit directly, with no ambient
// label-space reservation (that scoping lives in the top-level Run
// wrapper, not in core itself) so ranks and dummy counts are exact and
// easy to reason about in isolation.
func runStages(t *testing.T, in *core.InputGraph) *core.OutputGraph {
	t.Helper()
	g, err := core.Build(in)
	require.NoError(t, err)

	core.FitClusterDimensions(g)
	compoundSt := core.CollapseCompoundEdges(g)

	acSt := core.MakeAcyclic(g)
	err = core.Rank(g, core.RankOptions{UseSimplex: true})
	require.NoError(t, err)

	normSt := core.Normalize(g)

	// No order/position collaborator in this test: assign deterministic
	// placeholder coordinates directly from rank/order so Denormalize
	// has something to fold into polylines.
	for _, id := range g.Nodes() {
		n := g.Node(id)
		n.X, n.Y = float64(n.Order), float64(n.Rank)
	}

	core.Denormalize(g, normSt)
	core.Fixup(g, acSt)
	core.Unacyclic(g, acSt)
	core.DedupUndirected(g)
	core.RestoreCompoundEdges(g, compoundSt)
	core.RecalculateClusterPositions(g)

	return core.Emit(g, in.Directed, acSt)
}

func rankByID(out *core.OutputGraph, id string) float64 {
	for _, n := range out.Nodes {
		if n.ID == id {
			return n.Y
		}
	}
	return -1
}

func edgeByID(out *core.OutputGraph, id string) *core.OutputEdge {
	for i := range out.Edges {
		if out.Edges[i].ID == id {
			return &out.Edges[i]
		}
	}
	return nil
}

// S1 chain.
func TestScenarioChain(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []core.InputEdge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bc", Source: "b", Target: "c"},
		},
	}
	out := runStages(t, in)

	assert.Equal(t, 0.0, rankByID(out, "a"))
	assert.Equal(t, 1.0, rankByID(out, "b"))
	assert.Equal(t, 2.0, rankByID(out, "c"))
	assert.Empty(t, edgeByID(out, "ab").Points)
	assert.Empty(t, edgeByID(out, "bc").Points)
}

// S2 diamond.
func TestScenarioDiamond(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []core.InputEdge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "ac", Source: "a", Target: "c"},
			{ID: "bd", Source: "b", Target: "d"},
			{ID: "cd", Source: "c", Target: "d"},
		},
	}
	out := runStages(t, in)

	assert.Equal(t, 0.0, rankByID(out, "a"))
	assert.Equal(t, 1.0, rankByID(out, "b"))
	assert.Equal(t, 1.0, rankByID(out, "c"))
	assert.Equal(t, 2.0, rankByID(out, "d"))
}

// S3 long edge: exactly 2 interior polyline points, at ranks 1 and 2.
func TestScenarioLongEdge(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}},
		Edges:    []core.InputEdge{{ID: "ab", Source: "a", Target: "b", MinLen: 3}},
	}
	out := runStages(t, in)

	assert.Equal(t, 0.0, rankByID(out, "a"))
	assert.Equal(t, 3.0, rankByID(out, "b"))

	e := edgeByID(out, "ab")
	require.Len(t, e.Points, 2)
	assert.Equal(t, 1.0, e.Points[0].Y)
	assert.Equal(t, 2.0, e.Points[1].Y)
}

// Single interior dummy (span 2): that one node marks both the
// source-side and target-side polyline ends, so Points still has
// exactly 2 entries, both at the dummy's position.
func TestScenarioSingleDummyMarksBothEnds(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}},
		Edges:    []core.InputEdge{{ID: "ab", Source: "a", Target: "b", MinLen: 2}},
	}
	out := runStages(t, in)

	e := edgeByID(out, "ab")
	require.Len(t, e.Points, 2)
	assert.Equal(t, e.Points[0], e.Points[1])
	assert.Equal(t, 1.0, e.Points[0].Y)
}

// S4 cycle: output edge set (by id) equals input edge set, with
// original orientation restored.
func TestScenarioCycle(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []core.InputEdge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bc", Source: "b", Target: "c"},
			{ID: "ca", Source: "c", Target: "a"},
		},
	}
	out := runStages(t, in)

	require.Len(t, out.Edges, 3)
	assert.Equal(t, "a", edgeByID(out, "ab").Source)
	assert.Equal(t, "b", edgeByID(out, "ab").Target)
	assert.Equal(t, "b", edgeByID(out, "bc").Source)
	assert.Equal(t, "c", edgeByID(out, "bc").Target)
	assert.Equal(t, "c", edgeByID(out, "ca").Source)
	assert.Equal(t, "a", edgeByID(out, "ca").Target)
}

// S5 rank constraint: a (min) ranks at or below everyone, d (max) at
// or above everyone; one valid resolution is a=0,b=1,c=1,d=2.
func TestScenarioRankConstraint(t *testing.T) {
	t.Parallel()
	min := core.PrefRank{Kind: core.PrefRankMin}
	max := core.PrefRank{Kind: core.PrefRankMax}
	in := &core.InputGraph{
		Directed: true,
		Nodes: []core.InputNode{
			{ID: "a", PrefRank: &min}, {ID: "b"}, {ID: "c"}, {ID: "d", PrefRank: &max},
		},
		Edges: []core.InputEdge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "cd", Source: "c", Target: "d"},
		},
	}
	out := runStages(t, in)

	aRank, dRank := rankByID(out, "a"), rankByID(out, "d")
	for _, n := range out.Nodes {
		assert.LessOrEqual(t, aRank, n.Y)
		assert.GreaterOrEqual(t, dRank, n.Y)
	}
}

// S6 undirected input: each edge appears exactly once in the output.
func TestScenarioUndirected(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: false,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []core.InputEdge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bc", Source: "b", Target: "c"},
		},
	}
	out := runStages(t, in)

	assert.False(t, out.Directed)
	assert.Len(t, out.Edges, 2)
	assert.NotNil(t, edgeByID(out, "ab"))
	assert.NotNil(t, edgeByID(out, "bc"))
}

func TestScenarioNoDummySurvives(t *testing.T) {
	t.Parallel()
	in := &core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}},
		Edges:    []core.InputEdge{{ID: "ab", Source: "a", Target: "b", MinLen: 5}},
	}
	out := runStages(t, in)
	assert.Len(t, out.Nodes, 2)

	// 4 interior dummies reserve space but only the two index-marked
	// ends contribute polyline points.
	e := edgeByID(out, "ab")
	require.Len(t, e.Points, 2)
	assert.Equal(t, 1.0, e.Points[0].Y)
	assert.Equal(t, 4.0, e.Points[1].Y)
}
