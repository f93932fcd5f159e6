package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/core"
	"github.com/graphlayout/layered/position"
)

// buildOrdered constructs a two-rank graph with Rank and Order already
// assigned, the state position.Run actually receives once order has
// run in the real pipeline.
func buildOrdered(t *testing.T) (*core.Graph, map[string]core.NodeID) {
	t.Helper()
	g := core.NewGraph(true)
	ids := make(map[string]core.NodeID)
	add := func(id string, rank, ord int, w, h float64) {
		n := &core.Node{OrigID: id, Rank: rank, Order: ord, Width: w, Height: h}
		ids[id] = g.AddNode(n)
	}
	add("a0", 0, 0, 10, 10)
	add("a1", 0, 1, 10, 10)
	add("b0", 1, 0, 10, 10)
	add("b1", 1, 1, 10, 10)

	g.AddEdge(&core.Edge{Source: ids["a0"], Target: ids["b0"], Weight: 1})
	g.AddEdge(&core.Edge{Source: ids["a1"], Target: ids["b1"], Weight: 1})
	return g, ids
}

func TestRunAssignsRankToCrossAxis(t *testing.T) {
	t.Parallel()

	g, ids := buildOrdered(t)
	cfg, err := config.Default().Normalize()
	require.NoError(t, err)

	position.Run(g, cfg)

	assert.Equal(t, 0.0, g.Node(ids["a0"]).Y)
	assert.Equal(t, cfg.RankSep, g.Node(ids["b0"]).Y)
}

func TestRunSeparatesNodesWithinARank(t *testing.T) {
	t.Parallel()

	g, ids := buildOrdered(t)
	cfg, err := config.Default().Normalize()
	require.NoError(t, err)

	position.Run(g, cfg)

	a0, a1 := g.Node(ids["a0"]), g.Node(ids["a1"])
	gap := a1.X - a0.X
	assert.GreaterOrEqual(t, gap, a0.Width, "nodes in the same rank must not overlap")
}

func TestRunLeftToRightSwapsAxes(t *testing.T) {
	t.Parallel()

	g, ids := buildOrdered(t)
	cfg, err := config.Default().Normalize()
	require.NoError(t, err)
	cfg.RankDir = config.LeftToRight

	position.Run(g, cfg)

	assert.Equal(t, 0.0, g.Node(ids["a0"]).X)
	assert.Equal(t, cfg.RankSep, g.Node(ids["b0"]).X)
}

func TestRunBottomToTopFlipsCrossAxis(t *testing.T) {
	t.Parallel()

	g, ids := buildOrdered(t)
	cfg, err := config.Default().Normalize()
	require.NoError(t, err)
	cfg.RankDir = config.BottomToTop

	position.Run(g, cfg)

	// flipped: the higher rank (b0/b1) now sits at the smaller Y.
	assert.Less(t, g.Node(ids["b0"]).Y, g.Node(ids["a0"]).Y)
}

func TestRunSingleNodeGetsOrigin(t *testing.T) {
	t.Parallel()

	g := core.NewGraph(true)
	id := g.AddNode(&core.Node{OrigID: "solo", Rank: 0, Order: 0, Width: 10, Height: 10})
	cfg, err := config.Default().Normalize()
	require.NoError(t, err)

	position.Run(g, cfg)

	assert.Equal(t, 0.0, g.Node(id).X)
	assert.Equal(t, 0.0, g.Node(id).Y)
}
