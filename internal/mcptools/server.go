package mcptools

import (
	"github.com/budgetgarden/budgetgarden/pkg/budget"
	"github.com/mark3labs/mcp-go/server"
)

const serverInstructions = "Budget tools for a personal budgeting garden. Every tool answers with a JSON object " +
	"whose response_type is success or failure."

// NewServer creates an MCP server exposing every budget operation as a tool.
func NewServer(service budget.BudgetService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"budgetgarden",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	addTool := NewAddTool(service)
	s.AddTool(addTool.Definition(), addTool.Handle)

	deleteTool := NewDeleteTool(service)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	userDataTool := NewUserDataTool(service)
	s.AddTool(userDataTool.Definition(), userDataTool.Handle)

	updateSpentTool := NewUpdateSpentTool(service)
	s.AddTool(updateSpentTool.Definition(), updateSpentTool.Handle)

	summaryTool := NewSummaryTool(service)
	s.AddTool(summaryTool.Definition(), summaryTool.Handle)

	adviceTool := NewAdviceTool(service)
	s.AddTool(adviceTool.Definition(), adviceTool.Handle)

	return s
}
