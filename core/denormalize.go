package core

// Denormalize runs after order and position: it collapses each dummy
// chain back into a single edge whose Points are the (X,Y) of the two
// index-marked dummies in the chain (source end, then target end);
// interior dummies only reserved space and contribute nothing to the
// polyline. It removes the dummy nodes and their unit edges from the
// graph. Grounded on godagre's order.go removeDummyNodes and its
// edge_routing.go point-array construction from dummy coordinates.
func Denormalize(g *Graph, st *NormalizeState) {
	for eid, chain := range st.chains {
		points := make([]Point, 2)
		for _, nid := range chain.nodes {
			n := g.Node(nid)
			if len(n.DummyIndex) == 0 {
				continue
			}
			p := Point{X: n.X, Y: n.Y, UL: n.UL, UR: n.UR, DL: n.DL, DR: n.DR}
			for _, idx := range n.DummyIndex {
				points[idx] = p
			}
		}

		g.AddEdge(&Edge{
			ID:     eid,
			OrigID: chain.origID,
			Source: chain.source, Target: chain.target,
			MinLen: chain.minLen, Width: chain.width, Height: chain.height, Weight: chain.weight,
			Points: points,
		})

		for _, ceid := range chain.edges {
			g.RemoveEdge(ceid)
		}
		for _, nid := range chain.nodes {
			g.RemoveNode(nid)
		}
	}
}
