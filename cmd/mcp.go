package cmd

import (
	"github.com/budgetgarden/budgetgarden/internal/app"
	"github.com/budgetgarden/budgetgarden/internal/mcptools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the budget operations as MCP tools over stdio",
	RunE:  runMcp,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMcp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	deps, err := app.BuildDependencies(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// stdout carries the protocol, logs stay on stderr
	return server.ServeStdio(mcptools.NewServer(deps.BudgetService, Version))
}
