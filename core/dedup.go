package core

// DedupUndirected collapses the paired reverse edge Build added for
// each undirected input edge back down to one, keeping whichever copy
// was encountered first and discarding the rest. A no-op for directed
// graphs. Must run after Unacyclic, since both copies independently
// acquired their own dummy chains and polylines during layout; only
// one survives into the output graph, identified by its carried
// OrigID.
func DedupUndirected(g *Graph) {
	if g.Directed {
		return
	}
	seen := make(map[string]bool)
	for _, eid := range append([]EdgeID(nil), g.Edges()...) {
		e := g.Edge(eid)
		if e == nil || e.OrigID == "" {
			continue
		}
		if seen[e.OrigID] {
			g.RemoveEdge(eid)
			continue
		}
		seen[e.OrigID] = true
	}
}
