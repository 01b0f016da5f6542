// Package sampler runs a Metropolis-Hastings chain over DAG structures.
//
// The sampler owns burn-in, thinning and the accept/reject decision; the
// proposal mechanism lives in pkg/proposal and the scoring tables are built
// once before the chain starts. Each Run is independent: chains sharing a
// Proposal can execute concurrently as long as they use separate initial
// states and seeds.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/structmc/structmc/pkg/dag"
	"github.com/structmc/structmc/pkg/proposal"
)

// Options configures a single chain run.
type Options struct {
	// Iterations is the number of post-burn-in steps.
	Iterations int

	// BurnIn is the number of initial steps discarded before collection.
	BurnIn int

	// Thin keeps every Thin-th post-burn-in state. 1 keeps all.
	Thin int

	// Seed initializes the chain's random source. Runs with equal seeds,
	// options and proposal are reproducible.
	Seed uint64
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Iterations <= 0 {
		return errors.New("iterations must be positive")
	}
	if o.BurnIn < 0 {
		return errors.New("burn-in must not be negative")
	}
	if o.Thin <= 0 {
		o.Thin = 1
	}
	return nil
}

// Sample is one collected chain state.
type Sample struct {
	Step  int        `json:"step"`
	Score float64    `json:"score"`
	Edges []dag.Edge `json:"edges"`
}

// Result summarizes a finished chain.
type Result struct {
	RunID     string        `json:"run_id"`
	Options   Options       `json:"options"`
	Variables int           `json:"variables"`
	FanIn     int           `json:"fan_in"`
	Samples   []Sample      `json:"samples"`
	BestScore float64       `json:"best_score"`
	BestEdges []dag.Edge    `json:"best_edges"`
	Accepted  int           `json:"accepted"`
	Rejected  int           `json:"rejected"`
	NoMove    int           `json:"no_move"`
	Duration  time.Duration `json:"duration"`
}

// AcceptanceRate returns the fraction of steps whose proposal was accepted.
func (r *Result) AcceptanceRate() float64 {
	total := r.Accepted + r.Rejected + r.NoMove
	if total == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(total)
}

// Progress receives per-step updates while the chain runs. step counts
// from 1 to burn-in + iterations; score is the current state's total
// log-score. Hooks must be fast - they run on the chain goroutine.
type Progress func(step, total int, score float64)

// Sampler drives the chain. The zero value is not usable; use New.
type Sampler struct {
	proposal *proposal.Proposal
	logger   *log.Logger

	// OnStep, when set, is called after every chain step.
	OnStep Progress
}

// New creates a Sampler with the given proposal distribution.
// A nil logger falls back to log.Default().
func New(p *proposal.Proposal, logger *log.Logger) *Sampler {
	if logger == nil {
		logger = log.Default()
	}
	return &Sampler{proposal: p, logger: logger}
}

// Run executes the chain from init and collects thinned samples.
//
// A proposal failing with ErrNoMoves counts as a rejected no-op step; all
// other proposal errors abort the run. The initial state is never mutated.
func (s *Sampler) Run(ctx context.Context, init *dag.State, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	cur := init.Clone()
	curScore, err := s.proposal.TotalLogScore(cur)
	if err != nil {
		return nil, fmt.Errorf("score initial state: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Options:   opts,
		Variables: cur.NodeCount(),
		FanIn:     s.proposal.FanIn(),
		BestScore: curScore,
		BestEdges: cur.Edges(),
	}

	total := opts.BurnIn + opts.Iterations
	s.logger.Info("starting chain",
		"run", result.RunID,
		"variables", result.Variables,
		"fan_in", result.FanIn,
		"steps", total,
		"seed", opts.Seed)

	start := time.Now()
	for step := 1; step <= total; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, logAccept, scoreDelta, err := s.proposal.Sample(cur, rng)
		switch {
		case errors.Is(err, proposal.ErrNoMoves):
			result.NoMove++
		case err != nil:
			return nil, fmt.Errorf("step %d: %w", step, err)
		case math.Log(rng.Float64()) < logAccept:
			cur = next
			curScore += scoreDelta
			result.Accepted++
			if curScore > result.BestScore {
				result.BestScore = curScore
				result.BestEdges = cur.Edges()
			}
		default:
			result.Rejected++
		}

		if step > opts.BurnIn && (step-opts.BurnIn)%opts.Thin == 0 {
			result.Samples = append(result.Samples, Sample{
				Step:  step,
				Score: curScore,
				Edges: cur.Edges(),
			})
		}
		if s.OnStep != nil {
			s.OnStep(step, total, curScore)
		}
	}
	result.Duration = time.Since(start)

	s.logger.Info("chain finished",
		"run", result.RunID,
		"samples", len(result.Samples),
		"accept_rate", fmt.Sprintf("%.3f", result.AcceptanceRate()),
		"best_score", fmt.Sprintf("%.4f", result.BestScore),
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}
