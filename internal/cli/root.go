package cli

import (
	"github.com/spf13/cobra"

	"github.com/structmc/structmc/pkg/buildinfo"
)

// RootCommand builds the structmc command tree.
//
// Logging defaults to info level; the per-command --verbose handling lives
// in main, which adjusts the CLI's logger before execution. The logger is
// attached to the context and accessible to all commands via
// loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "structmc learns Bayesian-network structures by MCMC",
		Long:         `structmc samples directed acyclic graphs from the posterior implied by a precomputed local-score table, using Metropolis-Hastings over edge additions, deletions and reversals.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(newRunCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newScoresCmd())

	return root
}
