package main

import (
	"fmt"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <program.tm>",
	Short: "Check the transition table for consistency",
	Long:  `Crawls the table from the initial state and reports states that are unreachable or that certainly fail with an undefined transition.`,
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

		if err := validator.Error(validator.ValidateTable(m.Table())); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("Program is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
