package main

import (
	"fmt"
	"os"

	"github.com/aretw0/ndtm"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <program.tm>",
	Short: "Print a program in canonical form",
	Long:  `Parses the program and prints it back with normalized spacing and comments removed. Use --write to rewrite the file in place.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		m, err := ndtm.Load(args[0], ndtm.WithDialect(cfg.Dialect))
		if err != nil {
			return err
		}

		write, _ := cmd.Flags().GetBool("write")
		if write {
			return os.WriteFile(args[0], []byte(m.Program()), 0644)
		}
		fmt.Print(m.Program())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolP("write", "w", false, "Write the result back to the file")
}
