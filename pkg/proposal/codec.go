package proposal

import (
	"encoding/json"
	"fmt"

	"github.com/structmc/structmc/pkg/varset"
)

// distRecord is the serialized form of one ParentSetDist.
type distRecord struct {
	Variable  int       `json:"var"`
	Sets      [][]int   `json:"sets"`
	LogScores []float64 `json:"scores"`
}

// EncodeDists serializes enumerated distributions for caching.
func EncodeDists(dists []*ParentSetDist) ([]byte, error) {
	records := make([]distRecord, len(dists))
	for i, d := range dists {
		rec := distRecord{
			Variable:  d.variable,
			Sets:      make([][]int, len(d.sets)),
			LogScores: d.logScores,
		}
		for j, s := range d.sets {
			rec.Sets[j] = s.Members()
		}
		records[i] = rec
	}
	return json.Marshal(records)
}

// DecodeDists rebuilds distributions serialized by [EncodeDists].
func DecodeDists(data []byte) ([]*ParentSetDist, error) {
	var records []distRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode distributions: %w", err)
	}
	dists := make([]*ParentSetDist, len(records))
	for i, rec := range records {
		if len(rec.Sets) != len(rec.LogScores) {
			return nil, fmt.Errorf("decode distributions: variable %d has %d sets but %d scores",
				rec.Variable, len(rec.Sets), len(rec.LogScores))
		}
		sets := make([]varset.Set, len(rec.Sets))
		for j, members := range rec.Sets {
			sets[j] = varset.New(members...)
		}
		dists[i] = newParentSetDist(rec.Variable, sets, rec.LogScores)
	}
	return dists, nil
}
