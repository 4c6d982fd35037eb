package mcptools

import (
	"context"

	"github.com/budgetgarden/budgetgarden/pkg/budget"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddTool handles the budget_add MCP tool.
type AddTool struct {
	service budget.BudgetService
}

func NewAddTool(service budget.BudgetService) *AddTool {
	return &AddTool{service: service}
}

func (t *AddTool) Definition() mcp.Tool {
	return mcp.NewTool("budget_add",
		mcp.WithDescription("Create or replace the budget record of a category for a user."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Spending category, unique per user")),
		mcp.WithString("budget", mcp.Required(), mcp.Description("Budgeted amount")),
		mcp.WithString("duration", mcp.Required(), mcp.Description("Budget period length")),
		mcp.WithString("spent", mcp.Required(), mcp.Description("Amount spent so far")),
		mcp.WithString("plant", mcp.Required(), mcp.Description("Plant shown for the category")),
		mcp.WithString("notes", mcp.Description("Free text notes")),
	)
}

func (t *AddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, err := t.service.Add(ctx, budget.AddRequest{
		User:     optionalArg(req, "user"),
		Category: optionalArg(req, "category"),
		Budget:   optionalArg(req, "budget"),
		Duration: optionalArg(req, "duration"),
		Spent:    optionalArg(req, "spent"),
		Plant:    optionalArg(req, "plant"),
		Notes:    optionalArg(req, "notes"),
	})
	return envelopeResult(budget.EnvelopeOf(err, func() budget.Envelope { return budget.RecordEnvelope(record) }))
}

// DeleteTool handles the budget_delete MCP tool.
type DeleteTool struct {
	service budget.BudgetService
}

func NewDeleteTool(service budget.BudgetService) *DeleteTool {
	return &DeleteTool{service: service}
}

func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("budget_delete",
		mcp.WithDescription("Delete the budget record of a category. Deleting a missing record succeeds."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Spending category")),
	)
}

func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deleteReq := budget.DeleteRequest{
		User:     optionalArg(req, "user"),
		Category: optionalArg(req, "category"),
	}
	err := t.service.Delete(ctx, deleteReq)
	return envelopeResult(budget.EnvelopeOf(err, func() budget.Envelope {
		return budget.DeletedEnvelope(*deleteReq.User, *deleteReq.Category)
	}))
}

// UserDataTool handles the budget_get_user_data MCP tool.
type UserDataTool struct {
	service budget.BudgetService
}

func NewUserDataTool(service budget.BudgetService) *UserDataTool {
	return &UserDataTool{service: service}
}

func (t *UserDataTool) Definition() mcp.Tool {
	return mcp.NewTool("budget_get_user_data",
		mcp.WithDescription("List every budget record of a user."),
		mcp.WithString("user", mcp.Description("User identifier")),
	)
}

func (t *UserDataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := t.service.GetUserData(ctx, optionalArg(req, "user"))
	return envelopeResult(budget.EnvelopeOf(err, func() budget.Envelope { return budget.UserDataEnvelope(records) }))
}

// UpdateSpentTool handles the budget_update_spent MCP tool.
type UpdateSpentTool struct {
	service budget.BudgetService
}

func NewUpdateSpentTool(service budget.BudgetService) *UpdateSpentTool {
	return &UpdateSpentTool{service: service}
}

func (t *UpdateSpentTool) Definition() mcp.Tool {
	return mcp.NewTool("budget_update_spent",
		mcp.WithDescription("Add an amount, possibly negative, to the spent value of a category."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Spending category")),
		mcp.WithString("amount_spent", mcp.Required(), mcp.Description("Decimal amount to add")),
	)
}

func (t *UpdateSpentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	update, err := t.service.UpdateSpent(ctx, budget.UpdateSpentRequest{
		User:        optionalArg(req, "user"),
		Category:    optionalArg(req, "category"),
		AmountSpent: optionalArg(req, "amount_spent"),
	})
	return envelopeResult(budget.EnvelopeOf(err, func() budget.Envelope { return budget.SpentEnvelope(update) }))
}
