package core

// Build constructs the working graph W from the caller's input.
// Undirected input edges are added in both directions; Acyclic
// will orient one of each resulting pair and a later dedup pass (in
// Unacyclic's caller, Run in pipeline.go) collapses the redundant reverse copy back
// down using the edge's carried OrigID.
func Build(in *InputGraph) (*Graph, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	g := NewGraph(in.Directed)

	for _, n := range in.Nodes {
		node := &Node{
			OrigID: n.ID,
			Width:  n.Width,
			Height: n.Height,
		}
		if n.PrefRank != nil {
			pr := *n.PrefRank
			node.PrefRank = &pr
		}
		g.AddNode(node)
	}

	// Parents are wired after every node exists, since a node's
	// parent may be declared later in the input list.
	for _, n := range in.Nodes {
		if n.Parent == "" {
			continue
		}
		childID, _ := g.NodeByOrigID(n.ID)
		parentID, ok := g.NodeByOrigID(n.Parent)
		if !ok {
			return nil, newError(InvalidInput, "build", "node "+n.ID+" has unknown parent "+n.Parent, nil)
		}
		g.SetParent(childID, parentID)
	}

	for i, e := range in.Edges {
		minLen := e.MinLen
		if minLen <= 0 {
			minLen = 1
		}
		weight := e.Weight
		if weight <= 0 {
			weight = 1
		}
		src, _ := g.NodeByOrigID(e.Source)
		dst, _ := g.NodeByOrigID(e.Target)

		origID := e.ID
		if origID == "" {
			origID = syntheticEdgeID(i)
		}

		g.AddEdge(&Edge{
			OrigID: origID,
			Source: src,
			Target: dst,
			MinLen: minLen,
			Width:  e.Width,
			Height: e.Height,
			Weight: weight,
		})

		if !in.Directed {
			g.AddEdge(&Edge{
				OrigID: origID,
				Source: dst,
				Target: src,
				MinLen: minLen,
				Width:  e.Width,
				Height: e.Height,
				Weight: weight,
			})
		}
	}

	return g, nil
}

func syntheticEdgeID(i int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if i == 0 {
		return "_e0"
	}
	buf := make([]byte, 0, 8)
	n := i
	for n > 0 {
		buf = append([]byte{alphabet[n%len(alphabet)]}, buf...)
		n /= len(alphabet)
	}
	return "_e" + string(buf)
}
