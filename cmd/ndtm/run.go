package main

import (
	"context"
	"os"

	"github.com/aretw0/ndtm/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <program.tm>",
	Short: "Simulate a program and print every terminal branch",
	Long: `Runs the program on its own input (the first line of the file) or on --input,
exploring all branches depth-first. Use --optimize to skip configurations already
visited during the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.RunOptions{
			Path:     args[0],
			Optimize: cfg.Optimize,
			Dialect:  cfg.Dialect,
		}
		opts.Input, _ = cmd.Flags().GetString("input")
		opts.HasInput = cmd.Flags().Changed("input")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Style, _ = cmd.Flags().GetString("style")
		if cmd.Flags().Changed("log-level") {
			opts.LogLevel = cfg.LogLevel
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Execute(ctx, opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "Input overriding the program's first line")
	runCmd.Flags().BoolP("optimize", "o", false, "Skip configurations already visited")
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().Bool("headless", false, "Print one line per output, without formatting")
	runCmd.Flags().Bool("debug", false, "Log every step, prune and halt to stderr")
	runCmd.Flags().String("style", "", "Markdown style on terminals (dark, light, notty); empty detects")
}
