package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/structmc/structmc/pkg/dag"
	"github.com/structmc/structmc/pkg/sampler"
	"github.com/structmc/structmc/pkg/store"
)

func seededStore(t *testing.T) store.Store {
	t.Helper()
	st := store.NewMemoryStore()
	run := store.NewRun([]string{"Rain", "Sprinkler", "Wet"}, &sampler.Result{
		RunID:     "run-1",
		Variables: 3,
		FanIn:     2,
		BestScore: -4.5,
		BestEdges: []dag.Edge{{From: 0, To: 2}, {From: 1, To: 2}},
	})
	if err := st.Put(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRunsHandlerList(t *testing.T) {
	srv := httptest.NewServer(newRunsHandler(seededStore(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/runs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if got := body["runs"]; len(got) != 1 || got[0] != "run-1" {
		t.Errorf("runs = %v, want [run-1]", got)
	}
}

func TestRunsHandlerGet(t *testing.T) {
	srv := httptest.NewServer(newRunsHandler(seededStore(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/runs/run-1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var run store.Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.ID != "run-1" {
		t.Errorf("ID = %q, want %q", run.ID, "run-1")
	}
	if len(run.Result.BestEdges) != 2 {
		t.Errorf("BestEdges count = %d, want 2", len(run.Result.BestEdges))
	}
}

func TestRunsHandlerGetMissing(t *testing.T) {
	srv := httptest.NewServer(newRunsHandler(seededStore(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/runs/absent")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRunsHandlerDOT(t *testing.T) {
	srv := httptest.NewServer(newRunsHandler(seededStore(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/runs/run-1/dot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	if !strings.Contains(body, "digraph") {
		t.Errorf("body = %q, want DOT digraph", body)
	}
	if !strings.Contains(body, "Sprinkler") || !strings.Contains(body, "Wet") {
		t.Errorf("body = %q, want variable names as node labels", body)
	}
}
