package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultOpenAIBaseUrl = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultMaxTokens     = 1024
)

type OpenAIConfig struct {
	ApiKey    string
	Model     string
	BaseUrl   string
	MaxTokens int
	Timeout   time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// OpenAIClient calls the OpenAI chat completions endpoint.
type OpenAIClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseUrl    string
	maxTokens  int
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	client := &OpenAIClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.ApiKey,
		model:      cfg.Model,
		baseUrl:    strings.TrimSuffix(cfg.BaseUrl, "/"),
		maxTokens:  cfg.MaxTokens,
	}
	if client.model == "" {
		client.model = DefaultOpenAIModel
	}
	if client.baseUrl == "" {
		client.baseUrl = DefaultOpenAIBaseUrl
	}
	if client.maxTokens <= 0 {
		client.maxTokens = DefaultMaxTokens
	}
	return client, nil
}

func (c *OpenAIClient) GenerateSuggestion(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode OpenAI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("OpenAI API returned unexpected status: %d", resp.StatusCode)
		log.Error(err)
		return "", err
	}

	var response chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return "", fmt.Errorf("failed to decode OpenAI response: %w", err)
	}

	if len(response.Choices) == 0 {
		return NoSuggestion, nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
