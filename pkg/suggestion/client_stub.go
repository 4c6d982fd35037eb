package suggestion

import (
	"context"
	"sync"
)

// StubSuggester returns a fixed response, or a fixed error, and records every prompt it receives.
type StubSuggester struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func NewStubSuggester(response string) *StubSuggester {
	return &StubSuggester{response: response}
}

func NewFailingStubSuggester(err error) *StubSuggester {
	return &StubSuggester{err: err}
}

func (s *StubSuggester) GenerateSuggestion(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *StubSuggester) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
