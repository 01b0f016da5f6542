package store

import (
	"context"
	"errors"
	"testing"

	"github.com/structmc/structmc/pkg/dag"
	"github.com/structmc/structmc/pkg/sampler"
)

func testRun(id string) *Run {
	return NewRun([]string{"A", "B", "C"}, &sampler.Result{
		RunID:     id,
		Variables: 3,
		FanIn:     2,
		BestScore: -4.25,
		BestEdges: []dag.Edge{{From: 0, To: 1}, {From: 1, To: 2}},
		Samples: []sampler.Sample{
			{Step: 10, Score: -5.5, Edges: []dag.Edge{{From: 0, To: 1}}},
		},
		Accepted: 7,
		Rejected: 3,
	})
}

// backends under test; redis and mongo need live servers and are covered
// by the same contract through integration environments.
func testBackends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"Memory": NewMemoryStore(),
		"File":   fs,
	}
}

func TestStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			run := testRun("run-1")
			if err := s.Put(ctx, run); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := s.Get(ctx, "run-1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != "run-1" {
				t.Errorf("ID = %q, want %q", got.ID, "run-1")
			}
			if len(got.Names) != 3 || got.Names[2] != "C" {
				t.Errorf("Names = %v, want [A B C]", got.Names)
			}
			if got.Result.BestScore != -4.25 {
				t.Errorf("BestScore = %v, want -4.25", got.Result.BestScore)
			}
			if len(got.Result.BestEdges) != 2 || got.Result.BestEdges[1] != (dag.Edge{From: 1, To: 2}) {
				t.Errorf("BestEdges = %v", got.Result.BestEdges)
			}
			if len(got.Result.Samples) != 1 || got.Result.Samples[0].Step != 10 {
				t.Errorf("Samples = %v", got.Result.Samples)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"a", "b", "c"} {
				if err := s.Put(ctx, testRun(id)); err != nil {
					t.Fatalf("Put(%s): %v", id, err)
				}
			}
			ids, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(ids) != 3 {
				t.Errorf("len(List) = %d, want 3", len(ids))
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, testRun("gone")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Delete(ctx, "gone"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, "gone"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Delete = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPutCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	run := testRun("copy")
	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put: %v", err)
	}
	run.Names = []string{"mutated"}

	got, err := s.Get(ctx, "copy")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Names[0] != "A" {
		t.Errorf("stored run was affected by caller mutation: Names = %v", got.Names)
	}
}
