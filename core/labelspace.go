package core

// ReserveLabelSpace doubles every edge's MinLen so edge labels get a
// rank of their own to live in, and returns a release func that
// restores it. The caller's rankSep must be halved in tandem; that half
// of the idiom lives in pipeline.go's Run, which is the only place that
// knows the config. Both halves are released via defer on every exit
// path including error.
func ReserveLabelSpace(g *Graph) (release func()) {
	doubled := make(map[EdgeID]int, len(g.edges))
	for id, e := range g.edges {
		doubled[id] = e.MinLen
		e.MinLen *= 2
	}
	return func() {
		for id, orig := range doubled {
			if e, ok := g.edges[id]; ok {
				e.MinLen = orig
			}
		}
	}
}
