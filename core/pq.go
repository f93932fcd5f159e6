package core

import "container/heap"

// nodeHeap is a binary min-heap over NodeID keyed by an externally
// mutable priority, supporting decrease-key via an id->index side
// table. The standard library has no decrease-key heap, so
// container/heap plus a handle table backs initial feasible ranking's
// priority queue. Ties are broken by insertion order so results stay
// reproducible across runs.
type nodeHeap struct {
	items []*pqItem
	index map[NodeID]int // id -> position in items
	seq   map[NodeID]int // insertion order, for deterministic tie-break
}

type pqItem struct {
	id       NodeID
	priority int
}

func newNodeHeap() *nodeHeap {
	return &nodeHeap{index: make(map[NodeID]int), seq: make(map[NodeID]int)}
}

func (h *nodeHeap) Len() int { return len(h.items) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return h.seq[a.id] < h.seq[b.id]
}

func (h *nodeHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i].id] = i
	h.index[h.items[j].id] = j
}

func (h *nodeHeap) Push(x any) {
	it := x.(*pqItem)
	h.index[it.id] = len(h.items)
	h.items = append(h.items, it)
}

func (h *nodeHeap) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	delete(h.index, it.id)
	return it
}

// insert adds id with the given priority.
func (h *nodeHeap) insert(id NodeID, priority int) {
	h.seq[id] = len(h.seq)
	heap.Push(h, &pqItem{id: id, priority: priority})
}

// decreaseKey lowers id's priority, fixing up heap position. It is a
// no-op if the new priority is not lower than the current one, and if
// id is no longer in the queue.
func (h *nodeHeap) decreaseKey(id NodeID, priority int) {
	i, ok := h.index[id]
	if !ok || h.items[i].priority <= priority {
		return
	}
	h.items[i].priority = priority
	heap.Fix(h, i)
}

// extractMin removes and returns the minimum-priority id.
func (h *nodeHeap) extractMin() (NodeID, int, bool) {
	if h.Len() == 0 {
		return 0, 0, false
	}
	it := heap.Pop(h).(*pqItem)
	return it.id, it.priority, true
}

func (h *nodeHeap) empty() bool { return h.Len() == 0 }
