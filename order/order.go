// Package order implements the crossing-reduction phase between Rank
// and Position: assign each node a within-rank Order value that
// approximately minimizes edge crossings. It treats core.Graph as an
// external collaborator, reading Rank and writing Order.
//
// Grounded on godagre's order.go: the same barycenter-sweep-then-keep-
// best-of-N heuristic, adapted to operate on an already-normalized
// *core.Graph (dummy insertion/removal is core's job here, not
// order's) and to break barycenter ties by each node's current position
// in its layer (initially its insertion order) instead of node id
// string comparison, for determinism independent of
// caller-chosen ids.
package order

import (
	"math"
	"sort"

	"github.com/graphlayout/layered/core"
)

// Run reorders every rank's nodes in place to approximately minimize
// edge crossings, trying up to maxSweeps alternating down/up passes
// and keeping whichever produced the fewest crossings.
func Run(g *core.Graph, maxSweeps int) {
	if maxSweeps <= 0 {
		maxSweeps = 24
	}

	layers := buildLayers(g)
	initOrder(g, layers)

	best := crossingCount(g, layers)
	bestOrder := snapshotOrder(layers)

	for i := 0; i < maxSweeps; i++ {
		sweep(g, layers, i%2 == 0)
		if cc := crossingCount(g, layers); cc < best {
			best = cc
			bestOrder = snapshotOrder(layers)
		}
	}

	for id, ord := range bestOrder {
		g.Node(id).Order = ord
	}
}

func buildLayers(g *core.Graph) [][]core.NodeID {
	maxRank := 0
	for _, id := range g.Nodes() {
		if r := g.Node(id).Rank; r > maxRank {
			maxRank = r
		}
	}
	layers := make([][]core.NodeID, maxRank+1)
	for _, id := range g.Nodes() {
		r := g.Node(id).Rank
		layers[r] = append(layers[r], id)
	}
	return layers
}

// initOrder seeds every layer's order by insertion sequence, a
// deterministic analogue of sorting by node id.
func initOrder(g *core.Graph, layers [][]core.NodeID) {
	for _, layer := range layers {
		for i, id := range layer {
			g.Node(id).Order = i
		}
	}
}

func snapshotOrder(layers [][]core.NodeID) map[core.NodeID]int {
	out := make(map[core.NodeID]int)
	for _, layer := range layers {
		for i, id := range layer {
			out[id] = i
		}
	}
	return out
}

// sweep runs one pass over every layer in the given direction,
// re-sorting each by the barycenter of its already-placed neighbors in
// the adjacent layer, then transposes adjacent pairs within the layer
// to greedily undo remaining crossings.
func sweep(g *core.Graph, layers [][]core.NodeID, downward bool) {
	if downward {
		for i := 1; i < len(layers); i++ {
			sweepLayer(g, layers[i], downward)
			transpose(g, layers[i])
		}
	} else {
		for i := len(layers) - 2; i >= 0; i-- {
			sweepLayer(g, layers[i], downward)
			transpose(g, layers[i])
		}
	}
}

func sweepLayer(g *core.Graph, layer []core.NodeID, downward bool) {
	type scored struct {
		id   core.NodeID
		bary float64
		seq  int
	}
	scores := make([]scored, len(layer))
	for i, id := range layer {
		var neighbors []core.NodeID
		if downward {
			neighbors = g.Predecessors(id)
		} else {
			neighbors = g.Successors(id)
		}
		sum, weight := 0.0, 0.0
		for _, n := range neighbors {
			sum += float64(g.Node(n).Order)
			weight++
		}
		bary := float64(g.Node(id).Order)
		if weight > 0 {
			bary = sum / weight
		}
		scores[i] = scored{id: id, bary: bary, seq: i}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if math.Abs(scores[i].bary-scores[j].bary) < 1e-9 {
			return scores[i].seq < scores[j].seq
		}
		return scores[i].bary < scores[j].bary
	})

	for i, s := range scores {
		layer[i] = s.id
		g.Node(s.id).Order = i
	}
}

// transpose repeatedly swaps adjacent nodes within layer when doing so
// strictly reduces crossings against both neighboring layers, until no
// swap helps.
func transpose(g *core.Graph, layer []core.NodeID) {
	improved := true
	for improved {
		improved = false
		for i := 0; i+1 < len(layer); i++ {
			a, b := layer[i], layer[i+1]
			before := localCrossings(g, a, b)
			g.Node(a).Order, g.Node(b).Order = i+1, i
			after := localCrossings(g, b, a)
			if after < before {
				layer[i], layer[i+1] = b, a
				improved = true
			} else {
				g.Node(a).Order, g.Node(b).Order = i, i+1
			}
		}
	}
}

// localCrossings counts crossings contributed by the pair (a at
// position i, b at position i+1, in that order) against their
// predecessor and successor neighbors.
func localCrossings(g *core.Graph, a, b core.NodeID) int {
	count := 0
	count += crossBetween(positionsOf(g, g.Predecessors(a)), positionsOf(g, g.Predecessors(b)))
	count += crossBetween(positionsOf(g, g.Successors(a)), positionsOf(g, g.Successors(b)))
	return count
}

func positionsOf(g *core.Graph, ids []core.NodeID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = g.Node(id).Order
	}
	return out
}

// crossBetween counts pairs (x in left, y in right) with x > y: a sits
// before b in the layer, so any left-neighbor positioned after a
// right-neighbor of b crosses.
func crossBetween(left, right []int) int {
	count := 0
	for _, x := range left {
		for _, y := range right {
			if x > y {
				count++
			}
		}
	}
	return count
}

func crossingCount(g *core.Graph, layers [][]core.NodeID) int {
	total := 0
	for i := 0; i+1 < len(layers); i++ {
		total += bilayerCrossings(g, layers[i+1])
	}
	return total
}

// bilayerCrossings counts crossings among edges into layer from its
// predecessor layer by counting inversions, pair by pair, in the
// sequence of predecessor order values.
func bilayerCrossings(g *core.Graph, layer []core.NodeID) int {
	var southSequence []int
	for _, id := range layer {
		preds := g.Predecessors(id)
		positions := positionsOf(g, preds)
		sort.Ints(positions)
		southSequence = append(southSequence, positions...)
	}
	return countInversions(southSequence)
}

func countInversions(seq []int) int {
	count := 0
	for i := 0; i < len(seq); i++ {
		for j := i + 1; j < len(seq); j++ {
			if seq[i] > seq[j] {
				count++
			}
		}
	}
	return count
}
