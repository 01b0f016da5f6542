package proposal

import (
	"math/rand/v2"

	"github.com/structmc/structmc/pkg/dag"
)

// Neighborhood is the finite set of elementary transformations reachable
// from a state by one application of a move. Neighborhoods are recomputed
// fresh for every proposal step, never cached across states.
type Neighborhood interface {
	Size() int
}

// Move is one structural move type: it enumerates its neighborhood in the
// current state and proposes a single neighbor together with the log
// Metropolis-Hastings acceptance ratio and the raw log-score delta.
// New moves implement this interface rather than layering on an existing
// move.
type Move interface {
	Name() string

	// Moves enumerates the neighborhood of st. The result is only valid
	// for st's current adjacency.
	Moves(st *dag.State) Neighborhood

	// Propose samples one neighbor from nb, which must have been computed
	// from st by Moves. It returns the proposed state, the log acceptance
	// ratio and the log-score delta. The input state is never mutated.
	Propose(st *dag.State, nb Neighborhood, dists []*ParentSetDist, rng *rand.Rand) (*dag.State, float64, float64, error)
}
