package core

// Unacyclic restores every edge Acyclic reversed back to its original
// orientation now that rank, order, and position have all run against
// the DAG. Self-loops are restored separately by Emit.
func Unacyclic(g *Graph, st *AcyclicState) {
	st.undo(g)
}
