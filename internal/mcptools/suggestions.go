package mcptools

import (
	"context"

	"github.com/budgetgarden/budgetgarden/pkg/budget"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryTool handles the budget_summary MCP tool.
type SummaryTool struct {
	service budget.BudgetService
}

func NewSummaryTool(service budget.BudgetService) *SummaryTool {
	return &SummaryTool{service: service}
}

func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("budget_summary",
		mcp.WithDescription("Ask the language model for a summary of the user's spending."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
	)
}

func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaryReq := budget.SummaryRequest{User: optionalArg(req, "user")}
	summary, err := t.service.Summarize(ctx, summaryReq)
	return envelopeResult(budget.EnvelopeOf(err, func() budget.Envelope {
		return budget.SummaryEnvelope(*summaryReq.User, summary)
	}))
}

// AdviceTool handles the budget_advice MCP tool.
type AdviceTool struct {
	service budget.BudgetService
}

func NewAdviceTool(service budget.BudgetService) *AdviceTool {
	return &AdviceTool{service: service}
}

func (t *AdviceTool) Definition() mcp.Tool {
	return mcp.NewTool("budget_advice",
		mcp.WithDescription("Ask the language model for saving advice towards a goal, based on the user's spending."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Financial goal and priorities")),
	)
}

func (t *AdviceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	adviceReq := budget.AdviceRequest{
		User: optionalArg(req, "user"),
		Goal: optionalArg(req, "goal"),
	}
	advice, err := t.service.Advise(ctx, adviceReq)
	return envelopeResult(budget.EnvelopeOf(err, func() budget.Envelope {
		return budget.AdviceEnvelope(*adviceReq.User, advice)
	}))
}
