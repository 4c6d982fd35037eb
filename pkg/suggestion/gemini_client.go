package suggestion

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiConfig struct {
	ApiKey    string
	Model     string
	MaxTokens int
}

// GeminiClient generates suggestions with Google's Gemini API.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		model:     model,
		maxTokens: int32(maxTokens),
	}, nil
}

func (c *GeminiClient) GenerateSuggestion(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
			MaxOutputTokens:   c.maxTokens,
		},
	)
	if err != nil {
		err := fmt.Errorf("Gemini generate content failed: %w", err)
		log.Error(err)
		return "", err
	}

	if len(result.Candidates) == 0 {
		return NoSuggestion, nil
	}
	return strings.TrimSpace(result.Text()), nil
}
