// Package store persists finished sampling runs.
//
// A Run couples the chain output with the variable names it was learned
// over. The Store interface has four backends:
//   - memory: in-process map for tests and throwaway runs
//   - file: JSON files in a directory for CLI usage
//   - redis: shared storage for multiple processes
//   - mongo: document storage for larger archives
package store

import (
	"context"
	"errors"
	"time"

	"github.com/structmc/structmc/pkg/sampler"
)

// ErrNotFound is returned when the requested run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is a persisted sampling run.
type Run struct {
	ID        string         `json:"id" bson:"id"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Names     []string       `json:"names" bson:"names"`
	Result    sampler.Result `json:"result" bson:"result"`
}

// NewRun wraps a chain result for persistence. The run inherits the
// result's run ID.
func NewRun(names []string, result *sampler.Result) *Run {
	return &Run{
		ID:        result.RunID,
		CreatedAt: time.Now().UTC(),
		Names:     names,
		Result:    *result,
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)

	// Delete removes a run. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error
}
