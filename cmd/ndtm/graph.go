package main

import (
	"context"
	"fmt"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/cli"
	"github.com/aretw0/ndtm/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <program.tm>",
	Short: "Export the transition table as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the program's states and transitions.
With --trace the program is run first and the states it visited are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		m, err := ndtm.Load(args[0], ndtm.WithDialect(cfg.Dialect))
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if trace, _ := cmd.Flags().GetBool("trace"); trace {
			input := m.Input()
			if cmd.Flags().Changed("input") {
				input, _ = cmd.Flags().GetString("input")
			}
			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()

			overlay, err = cli.Trace(ctx, m, input, cfg.Optimize)
			if err != nil {
				return fmt.Errorf("trace failed: %w", err)
			}
		}

		fmt.Print(graph.GenerateMermaid(m.Table(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("trace", false, "Run the program and highlight visited states")
	graphCmd.Flags().StringP("input", "i", "", "Input for --trace overriding the program's first line")
	graphCmd.Flags().BoolP("optimize", "o", false, "Skip visited configurations while tracing")
}
