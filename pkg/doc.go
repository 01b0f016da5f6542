// Package pkg provides the core libraries for structmc structure learning.
//
// # Overview
//
// structmc samples Bayesian-network structures (directed acyclic graphs)
// from the posterior implied by precomputed local scores, using
// Metropolis-Hastings over structural moves. The pkg directory is
// organized as follows:
//
//   - [varset] - Immutable sorted variable sets and subset enumeration
//   - [dag] - DAG state with incremental ancestor tracking
//   - [score] - Scorer interface and JSON local-score tables
//   - [proposal] - Parent-set distributions and the structural moves
//   - [sampler] - The Metropolis-Hastings chain driver
//   - [cache] - Caching of enumerated distributions between runs
//   - [store] - Run persistence (memory, file, Redis, MongoDB)
//   - [export] - DOT and SVG output of learned structures
//
// # Architecture
//
// The typical data flow through structmc:
//
//	Local-score table (JSON)
//	         ↓
//	    [proposal.Enumerate] (one distribution per variable)
//	         ↓
//	    [proposal.Proposal] (edge add/delete and reversal moves)
//	         ↓
//	    [sampler.Sampler] (accept/reject, burn-in, thinning)
//	         ↓
//	    [store] / [export] output
//
// # Quick Start
//
// Load scores, build a proposal, and run a chain:
//
//	table, _ := score.Load("scores.json")
//	dists := proposal.Enumerate(table.Variables(), 2, table, nil)
//	prop, _ := proposal.New(proposal.DefaultMoves(), []float64{13, 2}, 2, dists)
//
//	s := sampler.New(prop, log.Default())
//	init := dag.New(table.Variables(), 2)
//	result, _ := s.Run(ctx, init, sampler.Options{Iterations: 100000})
//
// [varset]: https://pkg.go.dev/github.com/structmc/structmc/pkg/varset
// [dag]: https://pkg.go.dev/github.com/structmc/structmc/pkg/dag
// [score]: https://pkg.go.dev/github.com/structmc/structmc/pkg/score
// [proposal]: https://pkg.go.dev/github.com/structmc/structmc/pkg/proposal
// [sampler]: https://pkg.go.dev/github.com/structmc/structmc/pkg/sampler
// [cache]: https://pkg.go.dev/github.com/structmc/structmc/pkg/cache
// [store]: https://pkg.go.dev/github.com/structmc/structmc/pkg/store
// [export]: https://pkg.go.dev/github.com/structmc/structmc/pkg/export
package pkg
