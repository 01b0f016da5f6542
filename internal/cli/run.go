package cli

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/structmc/structmc/pkg/cache"
	"github.com/structmc/structmc/pkg/dag"
	"github.com/structmc/structmc/pkg/export"
	"github.com/structmc/structmc/pkg/proposal"
	"github.com/structmc/structmc/pkg/sampler"
	"github.com/structmc/structmc/pkg/score"
	"github.com/structmc/structmc/pkg/store"
)

func newRunCmd() *cobra.Command {
	var configPath string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a structure-learning chain",
		Long: `Run loads a TOML configuration and a local-score table, builds the
per-variable parent-set distributions, and samples DAG structures with
Metropolis-Hastings. The best structure and optional artifacts are written
when the chain finishes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(cmd, configPath, interactive)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "structmc.toml", "path to the run configuration")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show a live progress view")
	return cmd
}

func runChain(cmd *cobra.Command, configPath string, interactive bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	n := len(cfg.Model.Variables)

	table, err := score.Load(cfg.Model.ScoreFile)
	if err != nil {
		return err
	}
	if table.Variables() != n {
		return fmt.Errorf("score file covers %d variables, config names %d", table.Variables(), n)
	}

	dists, err := loadDists(cmd, cfg, table)
	if err != nil {
		return err
	}

	prop, err := proposal.New(
		proposal.DefaultMoves(),
		[]float64{cfg.Moves.AddDelete, cfg.Moves.Reversal},
		cfg.Model.FanIn,
		dists,
	)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(cfg.Chain.Seed, cfg.Chain.Seed))
	init := dag.Random(n, cfg.Model.FanIn, rng)

	s := sampler.New(prop, logger)
	opts := sampler.Options{
		Iterations: cfg.Chain.Iterations,
		BurnIn:     cfg.Chain.BurnIn,
		Thin:       cfg.Chain.Thin,
		Seed:       cfg.Chain.Seed,
	}

	var result *sampler.Result
	if interactive {
		result, err = runWithProgressView(ctx, s, init, opts)
	} else {
		result, err = s.Run(ctx, init, opts)
	}
	if err != nil {
		return err
	}

	printSummary(cfg, result)

	if err := writeArtifacts(cfg, result); err != nil {
		return err
	}
	return persistRun(cmd, cfg, result)
}

// loadDists returns the per-variable parent-set distributions, consulting
// the configured distribution cache before falling back to enumeration.
func loadDists(cmd *cobra.Command, cfg *Config, table *score.Table) ([]*proposal.ParentSetDist, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	n := len(cfg.Model.Variables)

	var c cache.Cache = cache.NewNullCache()
	if cfg.Cache.Dir != "" {
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		c = fc
	}
	defer func() { _ = c.Close() }()

	raw, err := os.ReadFile(cfg.Model.ScoreFile)
	if err != nil {
		return nil, fmt.Errorf("read score file: %w", err)
	}
	key := cache.Key("dists", cache.Hash(raw), n, cfg.Model.FanIn)

	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		dists, err := proposal.DecodeDists(data)
		if err == nil && len(dists) == n {
			logger.Debug("loaded parent-set distributions from cache", "dir", cfg.Cache.Dir)
			return dists, nil
		}
		logger.Debug("stale cache entry, re-enumerating", "err", err)
	}

	sp := newSpinner("scoring parent sets...")
	sp.start()
	enumProgress := newProgress(logger)
	dists := proposal.Enumerate(n, cfg.Model.FanIn, table, nil)
	sp.stop()
	enumProgress.done(fmt.Sprintf("Built %d parent-set distributions", n))

	if data, err := proposal.EncodeDists(dists); err == nil {
		if err := c.Set(ctx, key, data, 0); err != nil {
			logger.Debug("could not write distribution cache", "err", err)
		}
	}
	return dists, nil
}

func printSummary(cfg *Config, result *sampler.Result) {
	fmt.Println(StyleTitle.Render("Chain finished"))
	fmt.Printf("  run        %s\n", StyleValue.Render(result.RunID))
	fmt.Printf("  samples    %s\n", StyleNumber.Render(fmt.Sprintf("%d", len(result.Samples))))
	fmt.Printf("  accepted   %s\n", StyleNumber.Render(fmt.Sprintf("%.1f%%", 100*result.AcceptanceRate())))
	fmt.Printf("  best score %s\n", StyleNumber.Render(fmt.Sprintf("%.4f", result.BestScore)))
	fmt.Println(StyleDim.Render("  best structure:"))
	for _, e := range result.BestEdges {
		fmt.Printf("    %s → %s\n",
			StyleValue.Render(cfg.Model.Variables[e.From]),
			StyleValue.Render(cfg.Model.Variables[e.To]))
	}
	if len(result.BestEdges) == 0 {
		fmt.Println(StyleDim.Render("    (empty graph)"))
	}
}

func writeArtifacts(cfg *Config, result *sampler.Result) error {
	if cfg.Output.DOT == "" && cfg.Output.SVG == "" {
		return nil
	}
	dot := export.ToDOT(result.Variables, result.BestEdges, cfg.Model.Variables)

	if cfg.Output.DOT != "" {
		if err := os.WriteFile(cfg.Output.DOT, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write DOT: %w", err)
		}
		printSuccess("Wrote %s", cfg.Output.DOT)
	}
	if cfg.Output.SVG != "" {
		svg, err := export.RenderSVG(dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Output.SVG, svg, 0644); err != nil {
			return fmt.Errorf("write SVG: %w", err)
		}
		printSuccess("Wrote %s", cfg.Output.SVG)
	}
	return nil
}

func persistRun(cmd *cobra.Command, cfg *Config, result *sampler.Result) error {
	if cfg.Store.Backend == "none" {
		return nil
	}
	ctx := cmd.Context()

	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	if st == nil {
		return nil
	}

	if err := st.Put(ctx, store.NewRun(cfg.Model.Variables, result)); err != nil {
		return fmt.Errorf("persist run: %w", err)
	}
	printInfo("Stored run %s in %s backend", result.RunID, cfg.Store.Backend)
	return nil
}
