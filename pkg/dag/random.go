package dag

import "math/rand/v2"

// Random generates a random DAG over n nodes respecting the fan-in bound.
//
// A random topological order is drawn first; each node then receives a
// uniform number of parents (up to fanIn) sampled without replacement from
// the nodes preceding it in the order. The result is acyclic by
// construction and every edge respects the bound.
func Random(n, fanIn int, rng *rand.Rand) *State {
	s := New(n, fanIn)
	order := rng.Perm(n)

	for pos := 1; pos < n; pos++ {
		v := order[pos]
		maxParents := min(fanIn, pos)
		k := rng.IntN(maxParents + 1)
		if k == 0 {
			continue
		}
		for _, pi := range rng.Perm(pos)[:k] {
			// Earlier in the order, so the edge can never close a cycle.
			if err := s.AddEdge(order[pi], v); err != nil {
				panic("dag: random generation produced invalid edge: " + err.Error())
			}
		}
	}
	return s
}
