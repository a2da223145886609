package main

import (
	"fmt"
	"os"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ndtm",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, termenv.EnvColorProfile())
		}
		fmt.Printf("ndtm version %s\n", ndtm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
