package services

import (
	"context"
	"sync"
)

// MockLLM is a scriptable LLMService for tests. Without a GenerateFunc it
// returns canned responses in order, repeating the last one when the
// script runs out.
type MockLLM struct {
	InitModelFunc  func(ctx context.Context, modelName string) error
	ListModelsFunc func(ctx context.Context) ([]string, error)
	GenerateFunc   func(ctx context.Context, prompt string, system string) (string, error)

	Responses []string

	// Call tracking
	InitModelCalls []string
	GenerateCalls  []GenerateCall

	mu   sync.Mutex
	next int
}

// GenerateCall records the arguments of one Generate invocation.
type GenerateCall struct {
	Prompt string
	System string
}

// NewMockLLM creates a mock narrator that replies with the given
// responses in order.
func NewMockLLM(responses ...string) *MockLLM {
	return &MockLLM{Responses: responses}
}

func (m *MockLLM) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = append(m.InitModelCalls, modelName)
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

func (m *MockLLM) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []string{"mock-model"}, nil
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, system string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = append(m.GenerateCalls, GenerateCall{Prompt: prompt, System: system})

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, system)
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	resp := m.Responses[min(m.next, len(m.Responses)-1)]
	m.next++
	return StripThinking(resp), nil
}
