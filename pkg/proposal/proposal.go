package proposal

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/structmc/structmc/pkg/dag"
)

// DefaultMoves returns the standard move set: single-edge add/delete and
// edge reversal.
func DefaultMoves() []Move {
	return []Move{EdgeAddDelete{}, EdgeReversal{}}
}

// Proposal is the top-level proposal distribution over DAGs. It selects
// one of its moves - with probabilities renormalized over the moves whose
// neighborhood in the current state is nonempty - and delegates the actual
// proposal to it.
//
// A Proposal is read-only after construction and safe for concurrent use
// by independent chains, provided each chain passes its own state copy
// and random source.
type Proposal struct {
	moves []Move
	probs []float64
	fanIn int
	dists []*ParentSetDist
}

// New creates a Proposal. probs must contain one nonnegative weight per
// move with a positive total; weights are normalized internally. dists
// must hold one distribution per variable, built by [Enumerate] with the
// same fan-in.
func New(moves []Move, probs []float64, fanIn int, dists []*ParentSetDist) (*Proposal, error) {
	if len(moves) == 0 {
		return nil, errors.New("proposal: at least one move is required")
	}
	if len(probs) != len(moves) {
		return nil, fmt.Errorf("proposal: %d probabilities for %d moves", len(probs), len(moves))
	}
	var total float64
	for i, p := range probs {
		if p < 0 {
			return nil, fmt.Errorf("proposal: negative probability for move %q", moves[i].Name())
		}
		total += p
	}
	if total <= 0 {
		return nil, errors.New("proposal: move probabilities sum to zero")
	}
	normalized := make([]float64, len(probs))
	for i, p := range probs {
		normalized[i] = p / total
	}
	return &Proposal{moves: moves, probs: normalized, fanIn: fanIn, dists: dists}, nil
}

// FanIn returns the configured fan-in bound.
func (p *Proposal) FanIn() int { return p.fanIn }

// Dists returns the per-variable parent-set distributions.
// The returned slice and its elements must not be modified.
func (p *Proposal) Dists() []*ParentSetDist { return p.dists }

// TotalLogScore sums the table scores of every node's current parent set,
// i.e. the unnormalized log-probability of the whole structure.
func (p *Proposal) TotalLogScore(st *dag.State) (float64, error) {
	var total float64
	for v := 0; v < st.NodeCount(); v++ {
		s, err := p.dists[v].LogScore(st.Parents(v))
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// Sample proposes a successor of st. It returns the candidate state, the
// log Metropolis-Hastings acceptance ratio and the log-score delta; the
// caller applies the accept/reject decision. st is never mutated and the
// result carries the configured fan-in bound.
//
// Returns ErrFanInViolation if st already violates the bound, and
// ErrNoMoves if every move's neighborhood is empty.
func (p *Proposal) Sample(st *dag.State, rng *rand.Rand) (*dag.State, float64, float64, error) {
	for v := 0; v < st.NodeCount(); v++ {
		if st.InDegree(v) > p.fanIn {
			return nil, 0, 0, fmt.Errorf("%w: node %d has %d parents, bound is %d",
				ErrFanInViolation, v, st.InDegree(v), p.fanIn)
		}
	}
	if st.FanIn() != p.fanIn {
		st = st.Clone()
		st.SetFanIn(p.fanIn)
	}

	neighborhoods := make([]Neighborhood, len(p.moves))
	weights := make([]float64, len(p.moves))
	var total float64
	for i, m := range p.moves {
		neighborhoods[i] = m.Moves(st)
		if neighborhoods[i].Size() > 0 {
			weights[i] = p.probs[i]
			total += weights[i]
		}
	}
	if total <= 0 {
		return nil, 0, 0, ErrNoMoves
	}

	pick := -1
	for i, w := range weights {
		if w > 0 {
			pick = i // fallback to the last eligible move on rounding slip
		}
	}
	u := rng.Float64() * total
	for i, w := range weights {
		u -= w
		if w > 0 && u < 0 {
			pick = i
			break
		}
	}

	next, logAccept, scoreDelta, err := p.moves[pick].Propose(st, neighborhoods[pick], p.dists, rng)
	if err != nil {
		return nil, 0, 0, err
	}
	next.SetFanIn(p.fanIn)
	return next, logAccept, scoreDelta, nil
}
