package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/structmc/structmc/pkg/export"
)

func newRenderCmd() *cobra.Command {
	var configPath string
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "render <run-id>",
		Short: "Render a stored run's best structure",
		Long: `Render fetches a finished run from the configured store and emits its
best structure as Graphviz DOT or as a rendered SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRun(cmd, configPath, args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "structmc.toml", "path to the run configuration")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot)")
	return cmd
}

func renderRun(cmd *cobra.Command, configPath, runID, format, output string) error {
	ctx := cmd.Context()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	if st == nil {
		return fmt.Errorf("store backend is %q; nothing to render from", cfg.Store.Backend)
	}

	run, err := st.Get(ctx, runID)
	if err != nil {
		return err
	}
	dot := export.ToDOT(run.Result.Variables, run.Result.BestEdges, run.Names)

	switch format {
	case "dot":
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), dot)
			return nil
		}
		if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
			return err
		}
	case "svg":
		if output == "" {
			return fmt.Errorf("svg output requires --output")
		}
		svg, err := export.RenderSVG(dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, svg, 0644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	printSuccess("Wrote %s", output)
	return nil
}
