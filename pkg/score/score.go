// Package score defines the decomposable scoring contract used during
// parent-set enumeration.
//
// A Scorer assigns an unnormalized log-score to a single (variable,
// parent-set) pair. Scores are computed once while building the per-variable
// parent-set distributions and cached there; the sampler never calls a
// Scorer again. Data-driven score families (BGe and friends) are out of
// scope - callers bring their own Scorer, typically a precomputed [Table]
// loaded from disk.
package score

import "github.com/structmc/structmc/pkg/varset"

// Scorer computes the unnormalized log-score of a candidate parent set
// for a variable. Implementations must be deterministic for fixed data.
type Scorer interface {
	Score(v int, parents varset.Set) float64
}

// Func adapts a plain function to the Scorer interface.
type Func func(v int, parents varset.Set) float64

// Score implements Scorer.
func (f Func) Score(v int, parents varset.Set) float64 { return f(v, parents) }
