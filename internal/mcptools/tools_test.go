package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/budgetgarden/budgetgarden/internal/event_bus"
	"github.com/budgetgarden/budgetgarden/internal/utils"
	"github.com/budgetgarden/budgetgarden/pkg/budget"
	"github.com/budgetgarden/budgetgarden/pkg/storage"
	"github.com/budgetgarden/budgetgarden/pkg/suggestion"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(suggester suggestion.Suggester) budget.BudgetService {
	return budget.NewBudgetServiceImpl(
		budget.NewBudgetRepo(storage.NewMemoryStore()),
		suggester,
		event_bus.NewEventBus(),
		utils.SystemClock{},
	)
}

// toolReq builds a CallToolRequest with the given arguments.
func toolReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// decodeResult extracts the JSON envelope from the text content of a tool result.
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &envelope))
	return envelope
}

var foodArgs = map[string]interface{}{
	"user":     "alice",
	"category": "food",
	"budget":   "100",
	"duration": "30",
	"spent":    "20",
	"plant":    "fern",
}

func TestTools_RecordLifecycle(t *testing.T) {
	ctx := context.Background()
	service := newService(suggestion.NewStubSuggester(""))

	// add
	result, err := NewAddTool(service).Handle(ctx, toolReq(foodArgs))
	require.NoError(t, err)
	added := decodeResult(t, result)
	assert.False(t, result.IsError)
	assert.Equal(t, "success", added["response_type"])
	assert.Equal(t, "fern", added["plant"])
	assert.NotContains(t, added, "notes")

	// update spent
	result, err = NewUpdateSpentTool(service).Handle(ctx, toolReq(map[string]interface{}{
		"user": "alice", "category": "food", "amount_spent": "12.5",
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"response_type":  "success",
		"category":       "food",
		"previous_spent": 20.0,
		"new_spent":      32.5,
	}, decodeResult(t, result))

	// read
	result, err = NewUserDataTool(service).Handle(ctx, toolReq(map[string]interface{}{"user": "alice"}))
	require.NoError(t, err)
	data := decodeResult(t, result)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "32.5", data[0].(map[string]any)["spent"])

	// delete
	result, err = NewDeleteTool(service).Handle(ctx, toolReq(map[string]interface{}{"user": "alice", "category": "food"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"response_type": "success", "user": "alice", "category": "food"}, decodeResult(t, result))
}

func TestAddTool_MissingArgument(t *testing.T) {
	args := map[string]interface{}{}
	for k, v := range foodArgs {
		args[k] = v
	}
	delete(args, "user")

	result, err := NewAddTool(newService(suggestion.NewStubSuggester(""))).Handle(context.Background(), toolReq(args))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, map[string]any{
		"response_type": "failure",
		"error":         "Missing category, budget, duration, spent, or plant parameters.",
	}, decodeResult(t, result))
}

func TestUpdateSpentTool_NumericArgument(t *testing.T) {
	ctx := context.Background()
	service := newService(suggestion.NewStubSuggester(""))
	_, err := NewAddTool(service).Handle(ctx, toolReq(foodArgs))
	require.NoError(t, err)

	result, err := NewUpdateSpentTool(service).Handle(ctx, toolReq(map[string]interface{}{
		"user": "alice", "category": "food", "amount_spent": 5,
	}))

	require.NoError(t, err)
	assert.Equal(t, 25.0, decodeResult(t, result)["new_spent"])
}

func TestSuggestionTools(t *testing.T) {
	ctx := context.Background()
	stub := suggestion.NewStubSuggester("Plant more savings.")
	service := newService(stub)

	t.Run("summary", func(t *testing.T) {
		result, err := NewSummaryTool(service).Handle(ctx, toolReq(map[string]interface{}{"user": "alice"}))

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"response_type": "success", "user": "alice", "summary": "Plant more savings.",
		}, decodeResult(t, result))
	})

	t.Run("advice", func(t *testing.T) {
		result, err := NewAdviceTool(service).Handle(ctx, toolReq(map[string]interface{}{"user": "alice", "goal": "a trip"}))

		require.NoError(t, err)
		assert.Equal(t, "Plant more savings.", decodeResult(t, result)["advice"])
	})

	t.Run("advice without goal", func(t *testing.T) {
		result, err := NewAdviceTool(service).Handle(ctx, toolReq(map[string]interface{}{"user": "alice"}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "No user or goal provided", decodeResult(t, result)["error"])
	})
}

func TestDefinitions(t *testing.T) {
	service := newService(suggestion.NewStubSuggester(""))
	definitions := map[string]mcp.Tool{
		"budget_add":           NewAddTool(service).Definition(),
		"budget_delete":        NewDeleteTool(service).Definition(),
		"budget_get_user_data": NewUserDataTool(service).Definition(),
		"budget_update_spent":  NewUpdateSpentTool(service).Definition(),
		"budget_summary":       NewSummaryTool(service).Definition(),
		"budget_advice":        NewAdviceTool(service).Definition(),
	}

	for name, tool := range definitions {
		assert.Equal(t, name, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.Contains(t, definitions["budget_update_spent"].InputSchema.Required, "amount_spent")
	assert.Empty(t, definitions["budget_get_user_data"].InputSchema.Required)
	assert.NotNil(t, NewServer(service, "test"))
}
