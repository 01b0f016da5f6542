package varset

import (
	"testing"
)

func TestNewCanonicalizes(t *testing.T) {
	a := New(3, 1, 7)
	b := New(7, 3, 1, 3)

	if !a.Equal(b) {
		t.Errorf("Equal = false, want true for %v and %v", a, b)
	}
	if a.Key() != "1,3,7" {
		t.Errorf("Key = %q, want %q", a.Key(), "1,3,7")
	}
	if got := a.Members(); len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 7 {
		t.Errorf("Members = %v, want [1 3 7]", got)
	}
}

func TestEmptySet(t *testing.T) {
	var s Set
	if !s.Empty() {
		t.Error("zero Set should be empty")
	}
	if s.Key() != "" {
		t.Errorf("empty Key = %q, want empty string", s.Key())
	}
	if !s.Equal(New()) {
		t.Error("zero Set should equal New()")
	}
}

func TestContains(t *testing.T) {
	s := New(0, 2, 5)
	for _, v := range []int{0, 2, 5} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false, want true", v)
		}
	}
	for _, v := range []int{1, 3, 4, 6, -1} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) = true, want false", v)
		}
	}
}

func TestAddIsImmutable(t *testing.T) {
	s := New(1)
	s2 := s.Add(4)

	if s.Len() != 1 {
		t.Errorf("original Len = %d, want 1", s.Len())
	}
	if !s2.Equal(New(1, 4)) {
		t.Errorf("Add result = %v, want {1 4}", s2)
	}
	if got := s.Add(1); !got.Equal(s) {
		t.Errorf("adding existing member = %v, want %v", got, s)
	}
}

func TestDisjoint(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want bool
	}{
		{"BothEmpty", New(), New(), true},
		{"NoOverlap", New(1, 3), New(2, 4), true},
		{"Overlap", New(1, 3), New(3, 5), false},
		{"Subset", New(2), New(1, 2, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Disjoint(tt.b); got != tt.want {
				t.Errorf("Disjoint = %v, want %v", got, tt.want)
			}
			if got := tt.b.Disjoint(tt.a); got != tt.want {
				t.Errorf("Disjoint (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubsets(t *testing.T) {
	// 4 eligible indices (0..4 minus the excluded 2), sizes 0..2:
	// 1 + 4 + 6 = 11 subsets.
	got := Subsets(5, 2, 2)
	if len(got) != 11 {
		t.Fatalf("len(Subsets) = %d, want 11", len(got))
	}
	for _, s := range got {
		if s.Contains(2) {
			t.Errorf("subset %v contains excluded index 2", s)
		}
		if s.Len() > 2 {
			t.Errorf("subset %v exceeds max size 2", s)
		}
	}

	// No excluded index.
	all := Subsets(3, 3, -1)
	if len(all) != 8 {
		t.Errorf("full power set size = %d, want 8", len(all))
	}
}

func TestSubsetsDeterministic(t *testing.T) {
	a := Subsets(6, 3, 1)
	b := Subsets(6, 3, 1)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("subset %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSubsetsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Subsets(6, 3, 0) {
		if seen[s.Key()] {
			t.Errorf("duplicate subset %v", s)
		}
		seen[s.Key()] = true
	}
}
