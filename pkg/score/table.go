package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/structmc/structmc/pkg/varset"
)

// ErrVariableMismatch is returned by [Load] when a score file references
// a variable index outside the declared variable list.
var ErrVariableMismatch = errors.New("score entry references unknown variable")

// Table is an in-memory local-score table: one map per variable from a
// canonical parent-set key to the precomputed log-score. It implements
// [Scorer]; a lookup miss scores -Inf, which drives the candidate's
// selection probability to zero during enumeration.
type Table struct {
	names  []string
	scores []map[string]float64
}

// NewTable creates an empty table for the named variables.
func NewTable(names []string) *Table {
	scores := make([]map[string]float64, len(names))
	for i := range scores {
		scores[i] = make(map[string]float64)
	}
	return &Table{names: names, scores: scores}
}

// Variables returns the number of variables.
func (t *Table) Variables() int { return len(t.names) }

// Names returns the variable names in index order.
// The returned slice must not be modified.
func (t *Table) Names() []string { return t.names }

// Set records the log-score for a (variable, parent-set) pair.
func (t *Table) Set(v int, parents varset.Set, logScore float64) {
	t.scores[v][parents.Key()] = logScore
}

// Lookup returns the recorded log-score and whether the pair is present.
func (t *Table) Lookup(v int, parents varset.Set) (float64, bool) {
	s, ok := t.scores[v][parents.Key()]
	return s, ok
}

// Entries returns the number of recorded parent sets for variable v.
func (t *Table) Entries(v int) int { return len(t.scores[v]) }

// Score implements [Scorer]. Missing pairs score -Inf.
func (t *Table) Score(v int, parents varset.Set) float64 {
	if s, ok := t.scores[v][parents.Key()]; ok {
		return s
	}
	return math.Inf(-1)
}

// tableFile is the on-disk JSON shape of a Table.
type tableFile struct {
	Variables []string    `json:"variables"`
	Scores    []scoreLine `json:"scores"`
}

type scoreLine struct {
	Var     int     `json:"var"`
	Parents []int   `json:"parents"`
	Score   float64 `json:"score"`
}

// Load reads a score table from a JSON file produced by [Table.Save] or
// by an external scoring tool.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read score file: %w", err)
	}
	var f tableFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse score file: %w", err)
	}

	t := NewTable(f.Variables)
	for _, line := range f.Scores {
		if line.Var < 0 || line.Var >= len(f.Variables) {
			return nil, fmt.Errorf("%w: index %d", ErrVariableMismatch, line.Var)
		}
		t.Set(line.Var, varset.New(line.Parents...), line.Score)
	}
	return t, nil
}

// Save writes the table as JSON to path.
func (t *Table) Save(path string) error {
	f := tableFile{Variables: t.names}
	for v, m := range t.scores {
		for key, s := range m {
			f.Scores = append(f.Scores, scoreLine{
				Var:     v,
				Parents: keyToMembers(key),
				Score:   s,
			})
		}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func keyToMembers(key string) []int {
	if key == "" {
		return []int{}
	}
	var members []int
	start := 0
	for i := 0; i <= len(key); i++ {
		if i == len(key) || key[i] == ',' {
			n := 0
			for _, c := range key[start:i] {
				n = n*10 + int(c-'0')
			}
			members = append(members, n)
			start = i + 1
		}
	}
	return members
}
