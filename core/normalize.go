package core

// NormalizeState records what normalize did so denormalize can collapse
// the dummy chains back down afterward.
type NormalizeState struct {
	// chains maps an original long edge's id to the ordered list of
	// dummy node ids and dummy edge ids inserted in its place, plus the
	// edge's original attributes for reconstruction.
	chains map[EdgeID]*dummyChain
}

type dummyChain struct {
	origID         string
	source, target NodeID
	minLen         int
	width, height  float64
	weight         float64
	nodes          []NodeID
	edges          []EdgeID
}

// Normalize replaces every edge spanning more than one rank with a
// chain of dummy nodes, one per intermediate rank, connected by
// unit-length edges, so that every remaining edge in the graph
// connects adjacent ranks. This is the classic Sugiyama "proper graph"
// transform; grounded on godagre's order.go addDummyNodes, where the
// same chain-splice is tied to the order phase instead of being a stage
// of its own.
func Normalize(g *Graph) *NormalizeState {
	st := &NormalizeState{chains: make(map[EdgeID]*dummyChain)}

	for _, eid := range append([]EdgeID(nil), g.Edges()...) {
		e := g.Edge(eid)
		if e == nil {
			continue
		}
		src, dst := g.Node(e.Source), g.Node(e.Target)
		span := dst.Rank - src.Rank
		if span <= 1 {
			continue
		}

		chain := &dummyChain{
			origID: e.OrigID, source: e.Source, target: e.Target,
			minLen: e.MinLen, width: e.Width, height: e.Height, weight: e.Weight,
		}

		ref := &DummyEdgeRef{
			OrigID: e.OrigID, Source: e.Source, Target: e.Target,
			MinLen: e.MinLen, Width: e.Width, Height: e.Height, Weight: e.Weight,
		}

		prev := e.Source
		nDummies := dst.Rank - src.Rank - 1
		for i, r := 0, src.Rank+1; r < dst.Rank; i, r = i+1, r+1 {
			var idxs []int
			if i == 0 {
				idxs = append(idxs, 0)
			}
			if i == nDummies-1 {
				idxs = append(idxs, 1)
			}
			n := &Node{Rank: r, Dummy: true, DummyEdge: ref, Width: ref.Width, Height: ref.Height}
			if len(idxs) > 0 {
				n.DummyIndex = idxs
			}
			dummyID := g.AddNode(n)
			chain.nodes = append(chain.nodes, dummyID)
			dummyEdgeID := g.AddEdge(&Edge{Source: prev, Target: dummyID, MinLen: 1, Weight: e.Weight})
			chain.edges = append(chain.edges, dummyEdgeID)
			prev = dummyID
		}
		lastEdgeID := g.AddEdge(&Edge{Source: prev, Target: e.Target, MinLen: 1, Weight: e.Weight})
		chain.edges = append(chain.edges, lastEdgeID)

		g.RemoveEdge(eid)
		st.chains[eid] = chain
	}

	return st
}
