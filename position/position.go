// Package position implements the coordinate-assignment phase: given
// Rank and Order already assigned, compute each node's final (x,y). It
// treats core.Graph as an external collaborator exactly as order does,
// reading Rank/Order/Width/Height and writing X/Y.
//
// Grounded on godagre's position.go: four-alignment (top/bottom ×
// left/right) horizontal compaction averaged together, a simplified
// stand-in for full Brandes-Köpf conflict resolution that the same
// file's doc comment already describes as its approach. Rank becomes
// the cross-axis coordinate, laid out according to config.RankDir.
package position

import (
	"sort"

	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/core"
)

// Run assigns X/Y to every node in g.
func Run(g *core.Graph, cfg config.Config) {
	layers := buildLayerMatrix(g)

	alignments := [4]map[core.NodeID]float64{
		horizontalCompaction(g, layers, true, true, cfg.NodeSep),
		horizontalCompaction(g, layers, true, false, cfg.NodeSep),
		horizontalCompaction(g, layers, false, true, cfg.NodeSep),
		horizontalCompaction(g, layers, false, false, cfg.NodeSep),
	}

	finalX := make(map[core.NodeID]float64)
	for _, id := range g.Nodes() {
		sum, count := 0.0, 0
		for _, a := range alignments {
			if x, ok := a[id]; ok {
				sum += x
				count++
			}
		}
		if count > 0 {
			finalX[id] = sum / float64(count)
		}
	}

	for _, id := range g.Nodes() {
		n := g.Node(id)
		along := finalX[id]
		cross := float64(n.Rank) * cfg.RankSep

		switch cfg.RankDir {
		case config.LeftToRight, config.RightToLeft:
			n.X, n.Y = cross, along
		default:
			n.X, n.Y = along, cross
		}
	}

	switch cfg.RankDir {
	case config.BottomToTop:
		flipAxis(g, false)
	case config.RightToLeft:
		flipAxis(g, true)
	}
}

func flipAxis(g *core.Graph, horizontal bool) {
	max := 0.0
	for _, id := range g.Nodes() {
		n := g.Node(id)
		v := n.Y
		if horizontal {
			v = n.X
		}
		if v > max {
			max = v
		}
	}
	for _, id := range g.Nodes() {
		n := g.Node(id)
		if horizontal {
			n.X = max - n.X
		} else {
			n.Y = max - n.Y
		}
	}
}

func buildLayerMatrix(g *core.Graph) [][]core.NodeID {
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
	for _, layer := range layers {
		sort.Slice(layer, func(i, j int) bool {
			return g.Node(layer[i]).Order < g.Node(layer[j]).Order
		})
	}
	return layers
}

// horizontalCompaction assigns along-axis coordinates for one of the
// four (topAlign, leftAlign) combinations.
func horizontalCompaction(g *core.Graph, layers [][]core.NodeID, topAlign, leftAlign bool, nodeSep float64) map[core.NodeID]float64 {
	root := make(map[core.NodeID]core.NodeID)
	align := make(map[core.NodeID]core.NodeID)
	for _, layer := range layers {
		for _, id := range layer {
			root[id] = id
			align[id] = id
		}
	}

	if topAlign {
		for i := 1; i < len(layers); i++ {
			verticalAlign(g, layers[i-1], layers[i], root, align, leftAlign)
		}
	} else {
		for i := len(layers) - 2; i >= 0; i-- {
			verticalAlign(g, layers[i+1], layers[i], root, align, leftAlign)
		}
	}

	xs := make(map[core.NodeID]float64)
	for _, layer := range layers {
		blocks := make(map[core.NodeID][]core.NodeID)
		for _, id := range layer {
			r := root[id]
			blocks[r] = append(blocks[r], id)
		}

		var roots []core.NodeID
		for r := range blocks {
			roots = append(roots, r)
		}
		sort.Slice(roots, func(i, j int) bool {
			return minOrder(g, blocks[roots[i]]) < minOrder(g, blocks[roots[j]])
		})

		x := 0.0
		for _, r := range roots {
			block := blocks[r]
			sort.Slice(block, func(i, j int) bool {
				return g.Node(block[i]).Order < g.Node(block[j]).Order
			})
			for _, id := range block {
				xs[id] = x
				x += g.Node(id).Width + nodeSep
			}
		}
	}
	return xs
}

func minOrder(g *core.Graph, ids []core.NodeID) int {
	min := g.Node(ids[0]).Order
	for _, id := range ids[1:] {
		if o := g.Node(id).Order; o < min {
			min = o
		}
	}
	return min
}

// verticalAlign links each node in layer2 to its leftmost (leftAlign)
// or rightmost neighbor in layer1 by Order, building the root/align union-find-like maps that
// horizontalCompaction uses to group nodes into aligned blocks.
func verticalAlign(g *core.Graph, layer1, layer2 []core.NodeID, root, align map[core.NodeID]core.NodeID, leftAlign bool) {
	inLayer1 := make(map[core.NodeID]bool, len(layer1))
	for _, id := range layer1 {
		inLayer1[id] = true
	}

	for _, v := range layer2 {
		neighbors := neighborsIn(g, v, inLayer1)
		if len(neighbors) == 0 {
			continue
		}
		sort.Slice(neighbors, func(i, j int) bool {
			return g.Node(neighbors[i]).Order < g.Node(neighbors[j]).Order
		})

		var u core.NodeID
		if leftAlign {
			u = neighbors[0]
		} else {
			u = neighbors[len(neighbors)-1]
		}
		align[v] = u
		root[v] = root[u]
	}
}

func neighborsIn(g *core.Graph, v core.NodeID, inLayer map[core.NodeID]bool) []core.NodeID {
	seen := make(map[core.NodeID]bool)
	var out []core.NodeID
	for _, n := range g.Predecessors(v) {
		if inLayer[n] && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range g.Successors(v) {
		if inLayer[n] && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
