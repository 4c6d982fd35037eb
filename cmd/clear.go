package cmd

import (
	"fmt"

	"github.com/budgetgarden/budgetgarden/internal/app"
	"github.com/spf13/cobra"
)

var flagClearUser string

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every budget record of a user",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().StringVarP(&flagClearUser, "user", "u", "", "User whose records are deleted")
	_ = clearCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	deps, err := app.BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	if err := deps.BudgetService.ClearUser(ctx, flagClearUser); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared all budget records of %s\n", flagClearUser)
	return nil
}
