package suggestion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenAIClient(OpenAIConfig{ApiKey: "test-key", BaseUrl: srv.URL})
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_GenerateSuggestion(t *testing.T) {
	ctx := context.Background()

	t.Run("sends system and user messages and trims the answer", func(t *testing.T) {
		// given
		var received chatCompletionRequest
		client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Spend less on food.  \n"}}]}`))
		})

		// when
		suggestion, err := client.GenerateSuggestion(ctx, "Summarize")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Spend less on food.", suggestion)
		assert.Equal(t, DefaultOpenAIModel, received.Model)
		assert.Equal(t, DefaultMaxTokens, received.MaxTokens)
		require.Len(t, received.Messages, 2)
		assert.Equal(t, message{Role: "system", Content: SystemInstruction}, received.Messages[0])
		assert.Equal(t, message{Role: "user", Content: "Summarize"}, received.Messages[1])
	})

	t.Run("no choices yields the fallback text", func(t *testing.T) {
		client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})

		suggestion, err := client.GenerateSuggestion(ctx, "Summarize")

		require.NoError(t, err)
		assert.Equal(t, NoSuggestion, suggestion)
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.GenerateSuggestion(ctx, "Summarize")

		assert.ErrorContains(t, err, "unexpected status: 429")
	})

	t.Run("malformed payload fails", func(t *testing.T) {
		client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":`))
		})

		_, err := client.GenerateSuggestion(ctx, "Summarize")

		assert.ErrorContains(t, err, "failed to decode OpenAI response")
	})
}

func TestNewOpenAIClient(t *testing.T) {
	t.Run("api key is required", func(t *testing.T) {
		_, err := NewOpenAIClient(OpenAIConfig{})

		assert.Error(t, err)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		client, err := NewOpenAIClient(OpenAIConfig{ApiKey: "key", BaseUrl: "http://localhost/v1/"})

		require.NoError(t, err)
		assert.Equal(t, "http://localhost/v1", client.baseUrl)
		assert.Equal(t, DefaultOpenAIModel, client.model)
		assert.Equal(t, DefaultMaxTokens, client.maxTokens)
	})
}
