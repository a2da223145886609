package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/ndtm/internal/config"
	"github.com/aretw0/ndtm/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ndtm",
	Short: "ndtm simulates non-deterministic multi-tape Turing machines",
	Long: `ndtm reads a program (the input on the first line, then one transition per line)
and explores every branch of the machine, reporting the tapes and head positions of
each branch that reaches a terminal state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if f := cmd.Flags().Lookup("optimize"); f != nil && f.Changed {
		cfg.Optimize, _ = cmd.Flags().GetBool("optimize")
	}
	return cfg, nil
}

// serverLogger logs to stderr at the configured level.
func serverLogger(cfg *config.Config) *slog.Logger {
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return logging.New(lvl)
}
