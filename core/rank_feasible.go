package core

// initialFeasibleRanking assigns ranks via a Kahn-style topological
// sweep, run independently per weakly-connected component of g. It is
// not tight, only feasible: every edge satisfies rank(v)-rank(u) >=
// minLen, but slack may remain on many edges for network simplex to
// later squeeze out.
func initialFeasibleRanking(g *Graph) error {
	for _, comp := range g.ConnectedComponents() {
		if err := rankComponent(g, comp); err != nil {
			return err
		}
	}
	return nil
}

func rankComponent(g *Graph, comp []NodeID) error {
	inComponent := make(map[NodeID]bool, len(comp))
	for _, v := range comp {
		inComponent[v] = true
	}

	// unresolved[v] counts in-edges from within the component whose
	// source has not yet been assigned a rank.
	unresolved := make(map[NodeID]int, len(comp))
	for _, v := range comp {
		count := 0
		for _, eid := range g.InEdges(v) {
			if inComponent[g.Edge(eid).Source] {
				count++
			}
		}
		unresolved[v] = count
	}

	pq := newNodeHeap()
	for _, v := range comp {
		pq.insert(v, unresolved[v])
	}

	for !pq.empty() {
		v, degree, _ := pq.extractMin()
		if degree > 0 {
			return NotAcyclic("rank")
		}
		node := g.Node(v)
		maxRank := 0
		first := true
		for _, eid := range g.InEdges(v) {
			e := g.Edge(eid)
			if !inComponent[e.Source] {
				continue
			}
			candidate := g.Node(e.Source).Rank + e.MinLen
			if first || candidate > maxRank {
				maxRank = candidate
				first = false
			}
		}
		node.Rank = maxRank

		for _, eid := range g.OutEdges(v) {
			w := g.Edge(eid).Target
			if !inComponent[w] {
				continue
			}
			unresolved[w]--
			pq.decreaseKey(w, unresolved[w])
		}
	}
	return nil
}
