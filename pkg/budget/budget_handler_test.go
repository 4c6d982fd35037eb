package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/budgetgarden/budgetgarden/pkg/suggestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T, suggester *suggestion.StubSuggester) *BudgetHandler {
	f := setupServiceTest(t, suggester)
	return NewBudgetHandler(f.service)
}

func call(t *testing.T, h http.HandlerFunc, target string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	h(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

const addFood = "/add?user=alice&category=food&budget=100&duration=30&spent=20&plant=fern"

func TestBudgetHandler_Add(t *testing.T) {
	t.Run("echoes the stored record", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)

		body := call(t, handler.Add, addFood+"&notes=weekly")

		assert.Equal(t, map[string]any{
			"response_type": "success",
			"user":          "alice",
			"category":      "food",
			"budget":        "100",
			"duration":      "30",
			"spent":         "20",
			"plant":         "fern",
			"time":          "2024-05-01T10:15:30.123",
			"notes":         "weekly",
		}, body)
	})

	t.Run("notes are omitted when absent", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)

		body := call(t, handler.Add, addFood)

		assert.Equal(t, "success", body["response_type"])
		assert.NotContains(t, body, "notes")
	})

	t.Run("missing parameter is a failure with status 200", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)

		body := call(t, handler.Add, "/add?category=food&budget=100&duration=30&spent=20&plant=fern")

		assert.Equal(t, map[string]any{
			"response_type": "failure",
			"error":         "Missing category, budget, duration, spent, or plant parameters.",
		}, body)
	})
}

func TestBudgetHandler_DeleteAndGetUserData(t *testing.T) {
	// given
	handler := setupHandlerTest(t, nil)
	call(t, handler.Add, addFood)
	call(t, handler.Add, "/add?user=alice&category=rent&budget=900&duration=30&spent=900&plant=cactus")

	// when
	deleted := call(t, handler.Delete, "/delete?user=alice&category=food")
	data := call(t, handler.GetUserData, "/get-user-data?user=alice")

	// then
	assert.Equal(t, map[string]any{"response_type": "success", "user": "alice", "category": "food"}, deleted)
	assert.Equal(t, "success", data["response_type"])
	assert.Equal(t, []any{
		map[string]any{"category": "rent", "budget": "900", "duration": "30", "spent": "900", "plant": "cactus"},
	}, data["data"])
}

func TestBudgetHandler_Delete_MissingParameters(t *testing.T) {
	handler := setupHandlerTest(t, nil)

	body := call(t, handler.Delete, "/delete?user=alice")

	assert.Equal(t, "Missing user or category parameters.", body["error"])
}

func TestBudgetHandler_GetUserData_Empty(t *testing.T) {
	handler := setupHandlerTest(t, nil)

	body := call(t, handler.GetUserData, "/get-user-data?user=nobody")

	assert.Equal(t, map[string]any{"response_type": "success", "data": []any{}}, body)
}

func TestBudgetHandler_UpdateSpent(t *testing.T) {
	t.Run("returns previous and new amounts", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)
		call(t, handler.Add, addFood)

		body := call(t, handler.UpdateSpent, "/update-spent?user=alice&category=food&amount_spent=30")

		assert.Equal(t, map[string]any{
			"response_type":  "success",
			"category":       "food",
			"previous_spent": 20.0,
			"new_spent":      50.0,
		}, body)
		data := call(t, handler.GetUserData, "/get-user-data?user=alice")
		assert.Equal(t, "50.0", data["data"].([]any)[0].(map[string]any)["spent"])
	})

	t.Run("unknown category", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)

		body := call(t, handler.UpdateSpent, "/update-spent?user=alice&category=food&amount_spent=30")

		assert.Equal(t, map[string]any{"response_type": "failure", "error": "Budget entry not found"}, body)
	})
}

func TestBudgetHandler_Summary(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		handler := setupHandlerTest(t, suggestion.NewStubSuggester("Looks good."))

		body := call(t, handler.Summary, "/summary?user=alice")

		assert.Equal(t, map[string]any{"response_type": "success", "user": "alice", "summary": "Looks good."}, body)
	})

	t.Run("suggestion error is reported", func(t *testing.T) {
		handler := setupHandlerTest(t, suggestion.NewFailingStubSuggester(errors.New("timeout")))

		body := call(t, handler.Summary, "/summary?user=alice")

		assert.Equal(t, map[string]any{"response_type": "failure", "error": "timeout"}, body)
	})

	t.Run("missing user", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)

		body := call(t, handler.Summary, "/summary")

		assert.Equal(t, "Missing user parameter.", body["error"])
	})
}

func TestBudgetHandler_Advice(t *testing.T) {
	t.Run("returns the advice", func(t *testing.T) {
		handler := setupHandlerTest(t, suggestion.NewStubSuggester("Save 10%."))

		body := call(t, handler.Advice, "/advice?user=alice&goal=vacation")

		assert.Equal(t, map[string]any{"response_type": "success", "user": "alice", "advice": "Save 10%."}, body)
	})

	t.Run("empty goal", func(t *testing.T) {
		handler := setupHandlerTest(t, nil)

		body := call(t, handler.Advice, "/advice?user=alice&goal=")

		assert.Equal(t, map[string]any{"response_type": "failure", "error": "No user or goal provided"}, body)
	})
}

func TestBudgetHandler_StorageFailure(t *testing.T) {
	// given
	service, store, _ := setupFailingServiceTest(t)
	handler := NewBudgetHandler(service)
	store.getErr = errors.New("deadline exceeded")

	for name, tc := range map[string]struct {
		h      http.HandlerFunc
		target string
	}{
		"get user data": {handler.GetUserData, "/get-user-data?user=alice"},
		"update spent":  {handler.UpdateSpent, "/update-spent?user=alice&category=food&amount_spent=5"},
		"summary":       {handler.Summary, "/summary?user=alice"},
		"advice":        {handler.Advice, "/advice?user=alice&goal=save"},
	} {
		t.Run(name, func(t *testing.T) {
			// when
			body := call(t, tc.h, tc.target)

			// then
			assert.Equal(t, map[string]any{"response_type": "failure", "error": "deadline exceeded"}, body)
		})
	}

	t.Run("add", func(t *testing.T) {
		service, store, _ := setupFailingServiceTest(t)
		store.addErr = errors.New("permission denied")

		body := call(t, NewBudgetHandler(service).Add, addFood)

		assert.Equal(t, map[string]any{"response_type": "failure", "error": "permission denied"}, body)
	})
}
