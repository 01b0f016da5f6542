package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/structmc/structmc/pkg/score"
	"github.com/structmc/structmc/pkg/varset"
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Work with local-score tables",
	}
	cmd.AddCommand(newScoresInspectCmd())
	return cmd
}

func newScoresInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a score-table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := score.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%s: %d variables", args[0], table.Variables())))
			for v, name := range table.Names() {
				empty, hasEmpty := table.Lookup(v, varset.New())
				line := fmt.Sprintf("  %-16s %4d parent sets", name, table.Entries(v))
				if hasEmpty {
					line += fmt.Sprintf("   empty-set score %.4f", empty)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
