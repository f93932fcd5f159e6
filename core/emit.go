package core

import "strconv"

// Emit builds the OutputGraph from the working graph's final state.
// By this point every dummy node has been
// removed by denormalize and every compound node by the rank-constraint
// restore, so every surviving node carries its original input id.
// Self-loops pulled out by Acyclic are re-attached here, since they
// never participate in ranking, ordering, or positioning and so never
// received polyline points beyond the endpoint itself.
func Emit(g *Graph, directed bool, acSt *AcyclicState) *OutputGraph {
	out := &OutputGraph{Directed: directed}

	idOf := func(n *Node) string {
		if n.OrigID != "" {
			return n.OrigID
		}
		return "#" + strconv.Itoa(int(n.ID))
	}

	for _, nid := range g.Nodes() {
		n := g.Node(nid)
		on := OutputNode{
			ID: idOf(n), Width: n.Width, Height: n.Height, X: n.X, Y: n.Y,
		}
		if p := g.Parent(nid); p != noNode {
			on.Parent = idOf(g.Node(p))
		}
		out.Nodes = append(out.Nodes, on)
	}

	for _, eid := range g.Edges() {
		e := g.Edge(eid)
		out.Edges = append(out.Edges, OutputEdge{
			ID: e.OrigID, Source: idOf(g.Node(e.Source)), Target: idOf(g.Node(e.Target)),
			Points: e.Points,
		})
	}

	if acSt != nil {
		for _, sl := range acSt.selfLoops {
			e := sl.edge
			out.Edges = append(out.Edges, OutputEdge{
				ID: e.OrigID, Source: idOf(g.Node(e.Source)), Target: idOf(g.Node(e.Target)),
			})
		}
	}

	return out
}
