package proposal

import (
	"testing"

	"github.com/structmc/structmc/pkg/score"
	"github.com/structmc/structmc/pkg/varset"
)

func sizeScorer() score.Scorer {
	return score.Func(func(v int, parents varset.Set) float64 {
		return -float64(parents.Len())
	})
}

func TestEnumerateCounts(t *testing.T) {
	// 5 variables, fan-in 2: each variable has 1 + 4 + C(4,2) = 11 candidates.
	dists := Enumerate(5, 2, sizeScorer(), nil)
	if len(dists) != 5 {
		t.Fatalf("len(dists) = %d, want 5", len(dists))
	}
	for v, d := range dists {
		if d.Variable() != v {
			t.Errorf("dists[%d].Variable = %d", v, d.Variable())
		}
		if d.Len() != 11 {
			t.Errorf("dists[%d].Len = %d, want 11", v, d.Len())
		}
	}
}

func TestEnumerateExcludesSelf(t *testing.T) {
	dists := Enumerate(4, 3, sizeScorer(), nil)
	for v, d := range dists {
		for _, s := range d.sets {
			if s.Contains(v) {
				t.Errorf("variable %d has candidate %v containing itself", v, s)
			}
		}
	}
}

func TestEnumerateFeasibilityFilter(t *testing.T) {
	// Forbid variable 0 as a parent of anyone.
	dists := Enumerate(4, 2, sizeScorer(), func(v int, ps varset.Set) bool {
		return !ps.Contains(0)
	})
	for v := 1; v < 4; v++ {
		for _, s := range dists[v].sets {
			if s.Contains(0) {
				t.Errorf("variable %d kept infeasible candidate %v", v, s)
			}
		}
	}
	// Remaining candidates for v=1: subsets of {2,3} with size ≤ 2.
	if got := dists[1].Len(); got != 4 {
		t.Errorf("dists[1].Len = %d, want 4", got)
	}
}

func TestEnumerateIdempotent(t *testing.T) {
	a := Enumerate(5, 2, sizeScorer(), nil)
	b := Enumerate(5, 2, sizeScorer(), nil)
	for v := range a {
		if a[v].Len() != b[v].Len() {
			t.Fatalf("variable %d: table sizes differ: %d vs %d", v, a[v].Len(), b[v].Len())
		}
		for i, s := range a[v].sets {
			if !s.Equal(b[v].sets[i]) {
				t.Errorf("variable %d entry %d: %v vs %v", v, i, s, b[v].sets[i])
			}
			if a[v].logScores[i] != b[v].logScores[i] {
				t.Errorf("variable %d entry %d: scores differ", v, i)
			}
		}
	}
}
