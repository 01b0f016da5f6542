package proposal

import (
	"math"
	"testing"

	"github.com/structmc/structmc/pkg/score"
	"github.com/structmc/structmc/pkg/varset"
)

func TestDistCodecRoundtrip(t *testing.T) {
	scorer := score.Func(func(v int, parents varset.Set) float64 {
		return -float64(v) - 0.5*float64(parents.Len())
	})
	orig := Enumerate(4, 2, scorer, nil)

	data, err := EncodeDists(orig)
	if err != nil {
		t.Fatalf("EncodeDists() error = %v", err)
	}
	got, err := DecodeDists(data)
	if err != nil {
		t.Fatalf("DecodeDists() error = %v", err)
	}

	if len(got) != len(orig) {
		t.Fatalf("decoded %d dists, want %d", len(got), len(orig))
	}
	for v := range orig {
		if got[v].Variable() != orig[v].Variable() {
			t.Errorf("dist %d: Variable() = %d, want %d", v, got[v].Variable(), orig[v].Variable())
		}
		if got[v].Len() != orig[v].Len() {
			t.Errorf("dist %d: Len() = %d, want %d", v, got[v].Len(), orig[v].Len())
		}
	}

	ps := varset.New(1, 2)
	want, err := orig[0].LogScore(ps)
	if err != nil {
		t.Fatal(err)
	}
	have, err := got[0].LogScore(ps)
	if err != nil {
		t.Fatalf("LogScore() after decode error = %v", err)
	}
	if math.Abs(have-want) > 1e-12 {
		t.Errorf("LogScore(%v) = %v, want %v", ps, have, want)
	}
}

func TestDecodeDistsRejectsMismatch(t *testing.T) {
	if _, err := DecodeDists([]byte(`[{"var":0,"sets":[[1]],"scores":[]}]`)); err == nil {
		t.Fatal("DecodeDists() error = nil, want error")
	}
}

func TestDecodeDistsBadJSON(t *testing.T) {
	if _, err := DecodeDists([]byte(`{`)); err == nil {
		t.Fatal("DecodeDists() error = nil, want error")
	}
}
