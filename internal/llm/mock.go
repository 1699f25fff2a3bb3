package llm

import (
	"context"
	"sync"
)

// MockCompleter is a configurable Completer for tests. Set CompleteFunc to
// control behavior; Calls and Prompts record every invocation.
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	Calls   int
	Prompts []string
}

// NewStaticCompleter returns a mock that always answers with response
func NewStaticCompleter(response string) *MockCompleter {
	return &MockCompleter{
		CompleteFunc: func(context.Context, string) (string, error) { return response, nil },
	}
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
