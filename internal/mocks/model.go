package mocks

import (
	"context"
	"sync"
)

// MockModel implements backend.Model for testing
type MockModel struct {
	ModelName string

	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Text string
	Err  error

	mu      sync.Mutex
	prompts []string
}

// Name implements the backend.Model interface
func (m *MockModel) Name() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Generate implements the backend.Model interface
func (m *MockModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}
	return m.Text, m.Err
}

// Prompts returns the prompts passed to Generate, in call order.
func (m *MockModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
