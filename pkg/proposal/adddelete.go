package proposal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/structmc/structmc/pkg/dag"
)

// EdgeAddDelete proposes a single edge addition or deletion. Additions are
// drawn from the ordered pairs that keep the graph acyclic and within the
// fan-in bound; deletions from the current edge set. The choice between
// the two is weighted by the sizes of the respective candidate lists.
type EdgeAddDelete struct{}

// Name implements [Move].
func (EdgeAddDelete) Name() string { return "add-delete" }

type addDeleteNeighborhood struct {
	addable   []dag.Edge
	deletable []dag.Edge
}

func (n addDeleteNeighborhood) Size() int { return len(n.addable) + len(n.deletable) }

// Moves implements [Move]. An ordered pair (u,v) is addable when the edge
// is not present, v is not an ancestor of u (adding would close a cycle)
// and v still has parent capacity under the state's fan-in bound. Every
// current edge is deletable.
func (EdgeAddDelete) Moves(st *dag.State) Neighborhood {
	n := st.NodeCount()
	fanIn := st.FanIn()

	var addable []dag.Edge
	for v := 0; v < n; v++ {
		if st.InDegree(v) >= fanIn {
			continue
		}
		for u := 0; u < n; u++ {
			if u == v || st.HasEdge(u, v) || st.IsAncestor(v, u) {
				continue
			}
			addable = append(addable, dag.Edge{From: u, To: v})
		}
	}
	return addDeleteNeighborhood{addable: addable, deletable: st.Edges()}
}

// Propose implements [Move]. Only the target node's parent set changes, so
// the score delta is the difference of its old and new table entries. The
// Hastings correction compares the neighborhood size against a fresh
// enumeration in the proposed state: a single mutation can change the
// addability of many other pairs through the ancestor relation, so the
// reverse count is never reused from the forward one.
func (m EdgeAddDelete) Propose(st *dag.State, nb Neighborhood, dists []*ParentSetDist, rng *rand.Rand) (*dag.State, float64, float64, error) {
	adn, ok := nb.(addDeleteNeighborhood)
	if !ok {
		return nil, 0, 0, fmt.Errorf("add-delete: unexpected neighborhood type %T", nb)
	}
	a, d := len(adn.addable), len(adn.deletable)
	if a+d == 0 {
		return nil, 0, 0, fmt.Errorf("add-delete: %w", ErrNoMoves)
	}

	next := st.Clone()
	var edge dag.Edge
	if rng.IntN(a+d) < a {
		edge = adn.addable[rng.IntN(a)]
		if err := next.AddEdge(edge.From, edge.To); err != nil {
			return nil, 0, 0, fmt.Errorf("add-delete: apply addition: %w", err)
		}
	} else {
		edge = adn.deletable[rng.IntN(d)]
		if err := next.RemoveEdge(edge.From, edge.To); err != nil {
			return nil, 0, 0, fmt.Errorf("add-delete: apply deletion: %w", err)
		}
	}

	zOld, err := dists[edge.To].LogScore(st.Parents(edge.To))
	if err != nil {
		return nil, 0, 0, err
	}
	zNew, err := dists[edge.To].LogScore(next.Parents(edge.To))
	if err != nil {
		return nil, 0, 0, err
	}
	scoreDelta := zNew - zOld

	qInv := m.Moves(next).Size()
	logAccept := scoreDelta + math.Log(float64(a+d)/float64(qInv))

	return next, logAccept, scoreDelta, nil
}
