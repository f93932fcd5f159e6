package core

import "math"

// CompoundState is the undo record left by CollapseCompoundEdges, so
// RestoreCompoundEdges can return every edge to its original
// cluster-spanning endpoints once layout has run, before Emit.
type CompoundState struct {
	originalSource map[EdgeID]NodeID
	originalTarget map[EdgeID]NodeID
}

// CollapseCompoundEdges implements cluster support: an edge touching a
// cluster node is rerouted to one of that cluster's border members for
// the duration of ranking, ordering, and positioning, since clusters
// themselves never participate in those stages directly. Grounded on
// godagre's compound.go collapseEdgesToCompounds/restoreCollapsedEdges
// pair, adapted from its string-keyed edge map to this package's
// EdgeID arena.
func CollapseCompoundEdges(g *Graph) *CompoundState {
	st := &CompoundState{
		originalSource: make(map[EdgeID]NodeID),
		originalTarget: make(map[EdgeID]NodeID),
	}

	hasChildren := func(v NodeID) bool { return len(g.Children(v)) > 0 }

	for _, eid := range g.Edges() {
		e := g.Edge(eid)
		srcIsCluster := hasChildren(e.Source)
		dstIsCluster := hasChildren(e.Target)
		if !srcIsCluster && !dstIsCluster {
			continue
		}

		st.originalSource[eid] = e.Source
		st.originalTarget[eid] = e.Target

		oldSrc, oldDst := e.Source, e.Target
		if srcIsCluster {
			e.Source = borderNode(g, e.Source, true)
		}
		if dstIsCluster {
			e.Target = borderNode(g, e.Target, false)
		}
		g.rewireEdge(eid, oldSrc, oldDst)
	}

	return st
}

// borderNode picks the child of cluster that an inter-cluster edge
// should attach to: the last child for an outgoing edge, the first for
// an incoming one.
func borderNode(g *Graph, cluster NodeID, outgoing bool) NodeID {
	children := g.Children(cluster)
	if len(children) == 0 {
		return cluster
	}
	if outgoing {
		return children[len(children)-1]
	}
	return children[0]
}

// RestoreCompoundEdges undoes CollapseCompoundEdges: every rerouted
// edge's endpoints are set back to the cluster node itself. The
// adjacency-map entries are fixed up via rewireEdge since the endpoint
// change must stay reflected in g.out/g.in.
func RestoreCompoundEdges(g *Graph, st *CompoundState) {
	if st == nil {
		return
	}
	for eid, origSrc := range st.originalSource {
		e := g.Edge(eid)
		if e == nil {
			continue
		}
		oldSrc, oldDst := e.Source, e.Target
		e.Source = origSrc
		e.Target = st.originalTarget[eid]
		g.rewireEdge(eid, oldSrc, oldDst)
	}
}

// FitClusterDimensions grows every cluster node's Width/Height (before
// ranking) so it is large enough to contain its members, processing
// bottom-up so nested clusters account for their own children first.
// Grounded on godagre's adjustDimensionsRecursive.
func FitClusterDimensions(g *Graph) {
	const padding = 30.0
	const childSep = 50.0

	var visit func(v NodeID) (width, height float64)
	memo := make(map[NodeID]bool)
	visit = func(v NodeID) (float64, float64) {
		children := g.Children(v)
		n := g.Node(v)
		if len(children) == 0 {
			return n.Width, n.Height
		}
		if memo[v] {
			return n.Width, n.Height
		}
		memo[v] = true

		totalWidth := 0.0
		maxHeight := 0.0
		for _, c := range children {
			cw, ch := visit(c)
			totalWidth += cw
			if ch > maxHeight {
				maxHeight = ch
			}
		}
		minWidth := totalWidth + float64(len(children)-1)*childSep + 2*padding
		minHeight := maxHeight + 2*padding
		if n.Width < minWidth {
			n.Width = minWidth
		}
		if n.Height < minHeight {
			n.Height = minHeight
		}
		return n.Width, n.Height
	}

	for _, v := range g.Nodes() {
		if g.Parent(v) == noNode && len(g.Children(v)) > 0 {
			visit(v)
		}
	}
}

// RecalculateClusterPositions sets every cluster node's X/Y/Width/Height
// to the bounding box of its descendants' final positions, processed
// bottom-up, once position has run. Grounded on godagre's
// recalculateContainerPositions.
func RecalculateClusterPositions(g *Graph) {
	const padding = 30.0

	var visit func(v NodeID) (minX, minY, maxX, maxY float64, ok bool)
	visit = func(v NodeID) (float64, float64, float64, float64, bool) {
		children := g.Children(v)
		if len(children) == 0 {
			return 0, 0, 0, 0, false
		}

		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		found := false

		for _, c := range children {
			if len(g.Children(c)) > 0 {
				visit(c)
			}
			cn := g.Node(c)
			left, right := cn.X-cn.Width/2, cn.X+cn.Width/2
			top, bottom := cn.Y-cn.Height/2, cn.Y+cn.Height/2
			minX, maxX = math.Min(minX, left), math.Max(maxX, right)
			minY, maxY = math.Min(minY, top), math.Max(maxY, bottom)
			found = true
		}

		if found {
			minX -= padding
			maxX += padding
			minY -= padding
			maxY += padding
			n := g.Node(v)
			n.X = (minX + maxX) / 2
			n.Y = (minY + maxY) / 2
			n.Width = maxX - minX
			n.Height = maxY - minY
		}
		return minX, minY, maxX, maxY, found
	}

	for _, v := range g.Nodes() {
		if len(g.Children(v)) > 0 {
			visit(v)
		}
	}
}
