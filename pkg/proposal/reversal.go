package proposal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/structmc/structmc/pkg/dag"
	"github.com/structmc/structmc/pkg/varset"
)

// EdgeReversal reverses one edge i→j by orphaning both endpoints and
// resampling their parent sets from the conditioned distributions: i's new
// parents are forced to contain j and avoid i's descendants, then j's are
// drawn freely subject to acyclicity. The resampling makes the move
// acyclic by construction, so every current edge is a reversal candidate.
type EdgeReversal struct{}

// Name implements [Move].
func (EdgeReversal) Name() string { return "reversal" }

type reversalNeighborhood struct {
	edges []dag.Edge
}

func (n reversalNeighborhood) Size() int { return len(n.edges) }

// Moves implements [Move].
func (EdgeReversal) Moves(st *dag.State) Neighborhood {
	return reversalNeighborhood{edges: st.Edges()}
}

// Propose implements [Move]. The acceptance ratio is
//
//	(z*_i + z_j − z*_j − z_i) + log(m/m′)
//
// where z_i and z*_j are the conditioned log-partitions compatible with
// the current direction, z*_i and z_j the ones realized by the two-stage
// resampling, and m, m′ the edge counts before and after (both reversal
// neighborhoods are "all edges"). An empty conditioned slice surfaces as
// ErrEmptyDistribution; the driver must treat it as move infeasible.
func (EdgeReversal) Propose(st *dag.State, nb Neighborhood, dists []*ParentSetDist, rng *rand.Rand) (*dag.State, float64, float64, error) {
	rn, ok := nb.(reversalNeighborhood)
	if !ok {
		return nil, 0, 0, fmt.Errorf("reversal: unexpected neighborhood type %T", nb)
	}
	m := len(rn.edges)
	if m == 0 {
		return nil, 0, 0, fmt.Errorf("reversal: %w", ErrNoMoves)
	}

	edge := rn.edges[rng.IntN(m)]
	i, j := edge.From, edge.To

	// Descendants in the current graph, captured before any mutation.
	dscI := st.Descendants(i)
	dscJ := st.Descendants(j)

	oldI, err := dists[i].LogScore(st.Parents(i))
	if err != nil {
		return nil, 0, 0, err
	}
	oldJ, err := dists[j].LogScore(st.Parents(j))
	if err != nil {
		return nil, 0, 0, err
	}
	scoreOld := oldI + oldJ

	zI, err := dists[i].LogPartition(func(ps varset.Set) bool {
		return ps.Disjoint(dscI)
	})
	if err != nil {
		return nil, 0, 0, err
	}
	zStarJ, err := dists[j].LogPartition(func(ps varset.Set) bool {
		return ps.Contains(i) && ps.Disjoint(dscJ)
	})
	if err != nil {
		return nil, 0, 0, err
	}

	next := st.Clone()
	next.Orphan(i, j)

	// Post-orphaning, descendant sets may have shrunk.
	dscI = next.Descendants(i)
	psI, zStarI, err := dists[i].Sample(rng, func(ps varset.Set) bool {
		return ps.Contains(j) && ps.Disjoint(dscI)
	})
	if err != nil {
		return nil, 0, 0, err
	}
	for _, p := range psI.Members() {
		if err := next.AddEdge(p, i); err != nil {
			return nil, 0, 0, fmt.Errorf("reversal: apply parents of %d: %w", i, err)
		}
	}

	dscJ = next.Descendants(j)
	psJ, zJ, err := dists[j].Sample(rng, func(ps varset.Set) bool {
		return ps.Disjoint(dscJ)
	})
	if err != nil {
		return nil, 0, 0, err
	}
	for _, p := range psJ.Members() {
		if err := next.AddEdge(p, j); err != nil {
			return nil, 0, 0, fmt.Errorf("reversal: apply parents of %d: %w", j, err)
		}
	}

	newI, err := dists[i].LogScore(psI)
	if err != nil {
		return nil, 0, 0, err
	}
	newJ, err := dists[j].LogScore(psJ)
	if err != nil {
		return nil, 0, 0, err
	}
	scoreNew := newI + newJ

	logAccept := (zStarI + zJ - zStarJ - zI) + math.Log(float64(m)/float64(next.EdgeCount()))
	return next, logAccept, scoreNew - scoreOld, nil
}
