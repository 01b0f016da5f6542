package proposal

import (
	"github.com/structmc/structmc/pkg/score"
	"github.com/structmc/structmc/pkg/varset"
)

// Feasibility optionally filters candidate parent sets during enumeration,
// e.g. a structural prior excluding impossible parent relations. A nil
// Feasibility admits every candidate.
type Feasibility func(v int, parents varset.Set) bool

// Enumerate builds one [ParentSetDist] per variable by scoring every subset
// of the other variables with at most fanIn members. This is the dominant
// one-time cost, O(n · C(n, ≤fanIn)) scorer calls; it runs once before
// sampling begins and the scorer is never consulted again.
//
// The candidate order is deterministic, so two calls with the same inputs
// produce identical tables.
func Enumerate(n, fanIn int, scorer score.Scorer, feasible Feasibility) []*ParentSetDist {
	dists := make([]*ParentSetDist, n)
	for v := 0; v < n; v++ {
		candidates := varset.Subsets(n, fanIn, v)

		var sets []varset.Set
		var logScores []float64
		for _, ps := range candidates {
			if feasible != nil && !feasible(v, ps) {
				continue
			}
			sets = append(sets, ps)
			logScores = append(logScores, scorer.Score(v, ps))
		}
		dists[v] = newParentSetDist(v, sets, logScores)
	}
	return dists
}
