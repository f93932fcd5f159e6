// Package core implements the layered (Sugiyama) layout pipeline: the
// rank-assignment subsystem, dummy-node normalization, and the
// cycle-breaking/restoration pass that together turn an arbitrary
// directed graph into a proper layered graph ready for the external
// order/position collaborators in the sibling order and position
// packages.
package core

import "encoding/json"

// NodeID and EdgeID are stable arena handles. Reusing integer ids
// (rather than passing *Node/*Edge pointers around) keeps edge
// reversal and dummy-chain surgery constant-time id swaps, and avoids
// reference cycles in the doubly-linked adjacency structure.
type NodeID int
type EdgeID int

const noNode NodeID = 0

// PrefRankKind constrains a node's rank relative to the rest of its
// connected component.
type PrefRankKind int

const (
	PrefRankNone PrefRankKind = iota
	PrefRankFixed
	PrefRankMin
	PrefRankMax
)

// PrefRank is the optional rank constraint carried on a node value.
type PrefRank struct {
	Kind PrefRankKind `json:"kind"`
	Rank int          `json:"rank,omitempty"` // meaningful only when Kind == PrefRankFixed
}

func (k PrefRankKind) String() string {
	switch k {
	case PrefRankFixed:
		return "fixed"
	case PrefRankMin:
		return "min"
	case PrefRankMax:
		return "max"
	default:
		return "none"
	}
}

func (k PrefRankKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *PrefRankKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "fixed":
		*k = PrefRankFixed
	case "min":
		*k = PrefRankMin
	case "max":
		*k = PrefRankMax
	default:
		*k = PrefRankNone
	}
	return nil
}

// DummyEdgeRef identifies the original long edge a dummy node was
// inserted to subdivide. Storing this inline on the dummy, rather than
// a pointer back into a deleted edge, is what lets Denormalize
// reconstruct the edge from scratch.
type DummyEdgeRef struct {
	OrigID         string
	Source, Target NodeID
	MinLen         int
	Width, Height  float64
	Weight         float64
}

// Node is the working graph's per-node layout state.
type Node struct {
	ID     NodeID
	OrigID string // input id; "" for dummy and compound nodes

	Width, Height float64
	Rank          int
	PrefRank      *PrefRank

	Dummy     bool
	DummyEdge *DummyEdgeRef
	// DummyIndex marks a node as a polyline-contributing chain end: 0
	// for the dummy nearest the edge's source, 1 for the dummy nearest
	// its target. A chain with a single dummy (one intermediate rank)
	// carries both markers on that one node. Interior dummies of longer
	// chains carry neither; they only reserve space.
	DummyIndex []int

	X, Y           float64
	UL, UR, DL, DR float64
	Order          int // within-rank position, assigned by the order package

	Parent NodeID // noNode if top-level

	// compound is set on rank-group nodes created during §4.3.1's
	// constraint reduction; it never survives past the Rank stage.
	compound   bool
	compoundOf []NodeID
}

// Edge is the working graph's per-edge layout state.
type Edge struct {
	ID     EdgeID
	OrigID string // carried original "e" id; "" for internal edges
	Source NodeID
	Target NodeID

	MinLen int
	Width  float64
	Height float64
	Weight float64

	Points   []Point
	Reversed bool

	// network-simplex scratch state, valid only during Rank.
	treeEdge bool
	cutValue float64
}

// Point is one polyline control point written during Denormalize.
type Point struct {
	X, Y           float64
	UL, UR, DL, DR float64 `json:"-"`
}

// MarshalJSON emits only the coordinate pair; UL/UR/DL/DR are internal
// label-space bookkeeping with no meaning to a caller reading a
// polyline back.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}{p.X, p.Y})
}

// Graph is the pipeline's single mutable working graph W. It is
// exclusively owned by one pipeline invocation (§5): no method here is
// safe for concurrent use, and none needs to be, since stages run
// strictly in sequence.
type Graph struct {
	Directed bool

	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge

	nodeOrder []NodeID // insertion order, for deterministic iteration
	edgeOrder []EdgeID

	out map[NodeID][]EdgeID
	in  map[NodeID][]EdgeID

	parent   map[NodeID]NodeID
	children map[NodeID][]NodeID

	byOrigID map[string]NodeID

	nextNodeID NodeID
	nextEdgeID EdgeID
}

// NewGraph constructs an empty working graph.
func NewGraph(directed bool) *Graph {
	return &Graph{
		Directed: directed,
		nodes:    make(map[NodeID]*Node),
		edges:    make(map[EdgeID]*Edge),
		out:      make(map[NodeID][]EdgeID),
		in:       make(map[NodeID][]EdgeID),
		parent:   make(map[NodeID]NodeID),
		children: make(map[NodeID][]NodeID),
		byOrigID: make(map[string]NodeID),
	}
}

// AddNode inserts a new node and returns its id.
func (g *Graph) AddNode(n *Node) NodeID {
	g.nextNodeID++
	id := g.nextNodeID
	n.ID = id
	g.nodes[id] = n
	g.nodeOrder = append(g.nodeOrder, id)
	if n.OrigID != "" {
		g.byOrigID[n.OrigID] = id
	}
	return id
}

// AddEdge inserts a new edge and returns its id.
func (g *Graph) AddEdge(e *Edge) EdgeID {
	g.nextEdgeID++
	id := e.ID
	if id == 0 {
		id = g.nextEdgeID
	} else if id > g.nextEdgeID {
		g.nextEdgeID = id
	}
	e.ID = id
	g.edges[id] = e
	g.edgeOrder = append(g.edgeOrder, id)
	g.out[e.Source] = append(g.out[e.Source], id)
	g.in[e.Target] = append(g.in[e.Target], id)
	return id
}

// RemoveNode deletes a node. It does not remove incident edges; callers
// must remove those first (every stage that deletes a node in this
// pipeline has already rewired or removed its edges).
func (g *Graph) RemoveNode(id NodeID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	if n.OrigID != "" {
		delete(g.byOrigID, n.OrigID)
	}
	delete(g.nodes, id)
	delete(g.out, id)
	delete(g.in, id)
	if p, ok := g.parent[id]; ok {
		g.removeChild(p, id)
		delete(g.parent, id)
	}
	delete(g.children, id)
	g.nodeOrder = removeID(g.nodeOrder, id)
}

// RemoveEdge deletes an edge.
func (g *Graph) RemoveEdge(id EdgeID) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	g.out[e.Source] = removeEdgeID(g.out[e.Source], id)
	g.in[e.Target] = removeEdgeID(g.in[e.Target], id)
	delete(g.edges, id)
	g.edgeOrder = removeEdgeIDSlice(g.edgeOrder, id)
}

func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }
func (g *Graph) Edge(id EdgeID) *Edge { return g.edges[id] }

// NodeByOrigID looks up a node by its original input id.
func (g *Graph) NodeByOrigID(origID string) (NodeID, bool) {
	id, ok := g.byOrigID[origID]
	return id, ok
}

// Nodes returns node ids in insertion order.
func (g *Graph) Nodes() []NodeID { return g.nodeOrder }

// Edges returns edge ids in insertion order.
func (g *Graph) Edges() []EdgeID { return g.edgeOrder }

// OutEdges returns v's outgoing edges in insertion order.
func (g *Graph) OutEdges(v NodeID) []EdgeID { return g.out[v] }

// InEdges returns v's incoming edges in insertion order.
func (g *Graph) InEdges(v NodeID) []EdgeID { return g.in[v] }

// Successors returns the distinct target nodes of v's out-edges.
func (g *Graph) Successors(v NodeID) []NodeID {
	seen := make(map[NodeID]bool)
	var out []NodeID
	for _, eid := range g.out[v] {
		w := g.edges[eid].Target
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// Predecessors returns the distinct source nodes of v's in-edges.
func (g *Graph) Predecessors(v NodeID) []NodeID {
	seen := make(map[NodeID]bool)
	var out []NodeID
	for _, eid := range g.in[v] {
		u := g.edges[eid].Source
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// SetParent assigns a node's enclosing cluster.
func (g *Graph) SetParent(child, parent NodeID) {
	if old, ok := g.parent[child]; ok {
		g.removeChild(old, child)
	}
	if parent == noNode {
		delete(g.parent, child)
		return
	}
	g.parent[child] = parent
	g.children[parent] = append(g.children[parent], child)
}

// Parent returns a node's cluster, or 0 (noNode) if top-level.
func (g *Graph) Parent(v NodeID) NodeID { return g.parent[v] }

// Children returns a cluster's direct members in insertion order.
func (g *Graph) Children(v NodeID) []NodeID { return g.children[v] }

func (g *Graph) removeChild(parent, child NodeID) {
	kids := g.children[parent]
	for i, c := range kids {
		if c == child {
			g.children[parent] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

// ConnectedComponents partitions nodes into weakly-connected groups,
// treating every edge as undirected for reachability purposes. Rank
// normalizes minimum rank to 0 independently per component.
func (g *Graph) ConnectedComponents() [][]NodeID {
	visited := make(map[NodeID]bool)
	var components [][]NodeID

	for _, v := range g.nodeOrder {
		if visited[v] {
			continue
		}
		var comp []NodeID
		stack := []NodeID{v}
		visited[v] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, u)
			for _, eid := range g.out[u] {
				w := g.edges[eid].Target
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
			for _, eid := range g.in[u] {
				w := g.edges[eid].Source
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// Filter returns the ids of nodes satisfying pred, in insertion order.
func (g *Graph) Filter(pred func(*Node) bool) []NodeID {
	var out []NodeID
	for _, id := range g.nodeOrder {
		if pred(g.nodes[id]) {
			out = append(out, id)
		}
	}
	return out
}

func removeID(s []NodeID, id NodeID) []NodeID {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeEdgeID(s []EdgeID, id EdgeID) []EdgeID {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeEdgeIDSlice(s []EdgeID, id EdgeID) []EdgeID {
	return removeEdgeID(s, id)
}
