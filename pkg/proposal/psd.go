// Package proposal implements the Metropolis-Hastings proposal mechanism
// for MCMC structure learning over DAGs.
//
// The package has three layers. [ParentSetDist] is an unnormalized discrete
// log-distribution over the candidate parent sets of one variable, built
// once by [Enumerate] and read-only afterwards. [EdgeAddDelete] and
// [EdgeReversal] are the structural moves: each enumerates its neighborhood
// in the current state and proposes one neighbor together with the log
// acceptance ratio and raw score delta. [Proposal] selects among moves with
// nonempty neighborhoods and delegates.
//
// All mutation happens on copies of the input state, so a failed proposal
// leaves the caller's state untouched, and distributions are safe for
// concurrent reads by independent chains.
package proposal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/structmc/structmc/pkg/varset"
)

// Condition restricts a query to the parent sets it accepts.
// A nil Condition accepts every set.
type Condition func(varset.Set) bool

// ParentSetDist is the unnormalized log-distribution over candidate parent
// sets of a single variable. Immutable after construction.
type ParentSetDist struct {
	variable  int
	sets      []varset.Set
	logScores []float64
	index     map[string]int
}

func newParentSetDist(variable int, sets []varset.Set, logScores []float64) *ParentSetDist {
	index := make(map[string]int, len(sets))
	for i, s := range sets {
		index[s.Key()] = i
	}
	return &ParentSetDist{
		variable:  variable,
		sets:      sets,
		logScores: logScores,
		index:     index,
	}
}

// Variable returns the index of the variable this distribution belongs to.
func (d *ParentSetDist) Variable() int { return d.variable }

// Len returns the number of candidate parent sets in the table.
func (d *ParentSetDist) Len() int { return len(d.sets) }

// LogScore returns the raw log-score recorded for ps.
// Returns ErrUnknownParentSet if ps is not a table key.
func (d *ParentSetDist) LogScore(ps varset.Set) (float64, error) {
	i, ok := d.index[ps.Key()]
	if !ok {
		return 0, fmt.Errorf("%w: variable %d, set %v", ErrUnknownParentSet, d.variable, ps)
	}
	return d.logScores[i], nil
}

// selected returns the table indices whose sets satisfy cond.
func (d *ParentSetDist) selected(cond Condition) []int {
	if cond == nil {
		idx := make([]int, len(d.sets))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	var idx []int
	for i, s := range d.sets {
		if cond(s) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Sample draws one parent set from the conditioned slice of the table,
// with probability proportional to exp(logScore), and returns it with the
// log-partition of the slice. The singleton slice is returned directly
// with its raw log-score. Returns ErrEmptyDistribution when no set
// satisfies cond.
func (d *ParentSetDist) Sample(rng *rand.Rand, cond Condition) (varset.Set, float64, error) {
	idx := d.selected(cond)
	if len(idx) == 0 {
		return varset.Set{}, 0, fmt.Errorf("%w: variable %d", ErrEmptyDistribution, d.variable)
	}
	if len(idx) == 1 {
		return d.sets[idx[0]], d.logScores[idx[0]], nil
	}

	// Stabilize by shifting out the max before exponentiating.
	c := math.Inf(-1)
	for _, i := range idx {
		if d.logScores[i] > c {
			c = d.logScores[i]
		}
	}
	weights := make([]float64, len(idx))
	var z float64
	for k, i := range idx {
		weights[k] = math.Exp(d.logScores[i] - c)
		z += weights[k]
	}

	pick := idx[len(idx)-1]
	u := rng.Float64() * z
	for k, w := range weights {
		u -= w
		if u < 0 {
			pick = idx[k]
			break
		}
	}
	return d.sets[pick], math.Log(z) + c, nil
}

// LogPartition returns the log of the summed exponentiated scores over the
// conditioned slice, with the same stabilization, singleton shortcut and
// empty-slice failure as [ParentSetDist.Sample].
func (d *ParentSetDist) LogPartition(cond Condition) (float64, error) {
	idx := d.selected(cond)
	if len(idx) == 0 {
		return 0, fmt.Errorf("%w: variable %d", ErrEmptyDistribution, d.variable)
	}
	if len(idx) == 1 {
		return d.logScores[idx[0]], nil
	}

	c := math.Inf(-1)
	for _, i := range idx {
		if d.logScores[i] > c {
			c = d.logScores[i]
		}
	}
	var z float64
	for _, i := range idx {
		z += math.Exp(d.logScores[i] - c)
	}
	return math.Log(z) + c, nil
}
