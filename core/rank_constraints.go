package core

import "sort"

// constraintEdge is a snapshot of an edge removed during rank-constraint
// reduction, kept so it can be re-created verbatim once ranking and
// expandRanks have run.
type constraintEdge struct {
	id                    EdgeID
	reversed              bool
	origID                string
	source, target        NodeID
	minLen                int
	width, height, weight float64
}

// rankConstraintState is the undo record for reduceRankConstraints.
type rankConstraintState struct {
	compounds  []NodeID
	members    map[NodeID][]NodeID // compound -> its members
	savedEdges []constraintEdge
	addedEdges []EdgeID
	nested     *AcyclicState
}

// reduceRankConstraints collapses nodes sharing a prefRank value into
// one compound node, redirects incident edges, and (for "min"/"max")
// adds an explicit zero-minLen edge between the compound and every
// other node to force its rank to the global extreme. Returns nil,nil
// if no node declares a prefRank. Returns a ConstraintInfeasible error,
// restoring the graph to its pre-call state itself, if the min and max
// classes cannot be jointly satisfied.
func reduceRankConstraints(g *Graph) (*rankConstraintState, error) {
	var fixedKeys []int
	fixedGroups := make(map[int][]NodeID)
	var minGroup, maxGroup []NodeID

	for _, id := range g.Nodes() {
		n := g.Node(id)
		if n.PrefRank == nil {
			continue
		}
		switch n.PrefRank.Kind {
		case PrefRankFixed:
			if _, ok := fixedGroups[n.PrefRank.Rank]; !ok {
				fixedKeys = append(fixedKeys, n.PrefRank.Rank)
			}
			fixedGroups[n.PrefRank.Rank] = append(fixedGroups[n.PrefRank.Rank], id)
		case PrefRankMin:
			minGroup = append(minGroup, id)
		case PrefRankMax:
			maxGroup = append(maxGroup, id)
		}
	}
	if len(fixedKeys) == 0 && len(minGroup) == 0 && len(maxGroup) == 0 {
		return nil, nil
	}

	sort.Ints(fixedKeys)

	// A "min" node must rank at or below every other node, and a "max"
	// node at or above every other node, so no min node's rank can
	// exceed any max node's. A directed path from a max-group node to
	// a min-group node in the graph as given demands the opposite:
	// satisfying it requires the max end to rank below the min end.
	// Check this on the original edges, before redirection rewrites
	// them in terms of compounds and loses the distinction.
	if len(minGroup) > 0 && len(maxGroup) > 0 {
		minSet := make(map[NodeID]bool, len(minGroup))
		for _, m := range minGroup {
			minSet[m] = true
		}
		if anyReachable(g, maxGroup, minSet) {
			return nil, RankConstraintInfeasible("a path from the max-ranked class to the min-ranked class makes both bounds unsatisfiable")
		}
	}

	st := &rankConstraintState{members: make(map[NodeID][]NodeID)}
	memberCompound := make(map[NodeID]NodeID)
	memberKind := make(map[NodeID]PrefRankKind)

	newCompound := func(members []NodeID, kind PrefRankKind) NodeID {
		cid := g.AddNode(&Node{compound: true, compoundOf: append([]NodeID(nil), members...)})
		st.compounds = append(st.compounds, cid)
		st.members[cid] = members
		for _, m := range members {
			memberCompound[m] = cid
			memberKind[m] = kind
		}
		return cid
	}

	for _, k := range fixedKeys {
		newCompound(fixedGroups[k], PrefRankFixed)
	}
	var minCompound, maxCompound NodeID
	if len(minGroup) > 0 {
		minCompound = newCompound(minGroup, PrefRankMin)
	}
	if len(maxGroup) > 0 {
		maxCompound = newCompound(maxGroup, PrefRankMax)
	}

	removeAndSave := func(eid EdgeID) *Edge {
		e := g.Edge(eid)
		st.savedEdges = append(st.savedEdges, constraintEdge{
			id: e.ID, reversed: e.Reversed,
			origID: e.OrigID, source: e.Source, target: e.Target,
			minLen: e.MinLen, width: e.Width, height: e.Height, weight: e.Weight,
		})
		g.RemoveEdge(eid)
		return e
	}
	addEdge := func(src, dst NodeID, minLen int, weight float64) {
		id := g.AddEdge(&Edge{Source: src, Target: dst, MinLen: minLen, Weight: weight})
		st.addedEdges = append(st.addedEdges, id)
	}

	// Redirect edges incident to any constrained member. Snapshot the
	// edge list first since we mutate the graph while iterating.
	for _, eid := range append([]EdgeID(nil), g.Edges()...) {
		e := g.Edge(eid)
		if e == nil {
			continue
		}
		srcCompound, srcConstrained := memberCompound[e.Source]
		dstCompound, dstConstrained := memberCompound[e.Target]
		if !srcConstrained && !dstConstrained {
			continue
		}

		orig := removeAndSave(eid)
		newSrc, newDst := orig.Source, orig.Target

		if srcConstrained {
			switch memberKind[orig.Source] {
			case PrefRankFixed, PrefRankMin:
				newSrc = srcCompound // keep direction
			case PrefRankMax:
				// out-edge of a max member would force the compound's
				// rank down relative to its successor; reverse it so
				// it instead becomes an in-edge of the compound.
				addEdge(newDst, srcCompound, 0, orig.Weight)
				continue
			}
		}
		if dstConstrained {
			switch memberKind[orig.Target] {
			case PrefRankFixed, PrefRankMax:
				newDst = dstCompound // keep direction
			case PrefRankMin:
				// in-edge of a min member would force the compound's
				// rank up relative to its predecessor; reverse it so
				// it instead becomes an out-edge of the compound.
				addEdge(dstCompound, newSrc, 0, orig.Weight)
				continue
			}
		}
		addEdge(newSrc, newDst, orig.MinLen, orig.Weight)
	}

	allOthers := func(exclude map[NodeID]bool) []NodeID {
		var out []NodeID
		for _, id := range g.Nodes() {
			n := g.Node(id)
			if n.compound || exclude[id] {
				continue
			}
			out = append(out, id)
		}
		return out
	}

	if len(minGroup) > 0 {
		excl := map[NodeID]bool{}
		for _, m := range minGroup {
			excl[m] = true
		}
		for _, v := range allOthers(excl) {
			addEdge(minCompound, v, 0, 0)
		}
	}
	if len(maxGroup) > 0 {
		excl := map[NodeID]bool{}
		for _, m := range maxGroup {
			excl[m] = true
		}
		for _, v := range allOthers(excl) {
			addEdge(v, maxCompound, 0, 0)
		}
	}

	// The redirection can introduce cycles even on an originally
	// acyclic graph; rerun cycle-breaking before ranking.
	st.nested = MakeAcyclic(g)

	return st, nil
}

// anyReachable reports whether any node in targets is reachable from
// any of sources by following successor edges.
func anyReachable(g *Graph, sources []NodeID, targets map[NodeID]bool) bool {
	seen := make(map[NodeID]bool, len(sources))
	queue := append([]NodeID(nil), sources...)
	for _, s := range sources {
		seen[s] = true
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if targets[v] {
			return true
		}
		for _, n := range g.Successors(v) {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// expandRanks broadcasts each compound's final rank to every one of
// its members.
func (st *rankConstraintState) expandRanks(g *Graph) {
	if st == nil {
		return
	}
	for _, cid := range st.compounds {
		c := g.Node(cid)
		for _, m := range st.members[cid] {
			g.Node(m).Rank = c.Rank
		}
	}
}

// restore undoes reduceRankConstraints: the nested acyclic pass is
// reverted, every edge added for reduction purposes is removed, compound
// nodes are deleted, and the original edges are recreated verbatim.
func (st *rankConstraintState) restore(g *Graph) {
	if st == nil {
		return
	}
	if st.nested != nil {
		st.nested.undo(g)
	}
	for _, eid := range st.addedEdges {
		g.RemoveEdge(eid)
	}
	for _, cid := range st.compounds {
		g.RemoveNode(cid)
	}
	for _, se := range st.savedEdges {
		g.AddEdge(&Edge{
			ID: se.id, OrigID: se.origID, Source: se.source, Target: se.target,
			MinLen: se.minLen, Width: se.width, Height: se.height, Weight: se.weight,
			Reversed: se.reversed,
		})
	}
}
