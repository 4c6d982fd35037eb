package suggestion

import "context"

const (
	SystemInstruction = "You are an expert in personal financial budgeting and advice. " +
		"Always respond with a single, clear, and concise paragraph in plain text. " +
		"Do not use markdown, lists, or any formatting. " +
		"Your response should be a standalone piece of advice, as the user will not reply."

	// NoSuggestion is returned when the model answers without any choice.
	NoSuggestion = "No suggestion available."
)

// Suggester turns a prompt into a single paragraph of text produced by a language model.
type Suggester interface {
	GenerateSuggestion(ctx context.Context, prompt string) (string, error)
}
