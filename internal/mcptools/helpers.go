package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/budgetgarden/budgetgarden/pkg/budget"
	"github.com/mark3labs/mcp-go/mcp"
)

// optionalArg returns nil when the argument was not passed, so that absence and an empty value stay distinct.
func optionalArg(req mcp.CallToolRequest, name string) *string {
	value, ok := req.GetArguments()[name]
	if !ok || value == nil {
		return nil
	}
	if text, ok := value.(string); ok {
		return &text
	}
	text := fmt.Sprint(value)
	return &text
}

// envelopeResult renders the envelope as JSON text. Failure envelopes are flagged as tool errors.
func envelopeResult(envelope budget.Envelope) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	if _, failed := envelope["error"]; failed {
		return mcp.NewToolResultError(string(body)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
