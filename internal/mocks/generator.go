package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/blogcraft/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, topic string) (generation.Result, error)

	// Default response values
	Result generation.Result
	Err    error

	mu     sync.Mutex
	topics []string
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, topic string) (generation.Result, error) {
	m.mu.Lock()
	m.topics = append(m.topics, topic)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, topic)
	}
	return m.Result, m.Err
}

// Calls returns the topics passed to Generate, in call order.
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.topics...)
}

// Reset clears the call tracking state
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = nil
}

// NewMockGeneratorWithContent creates a MockGenerator that succeeds with content
// and the default message.
func NewMockGeneratorWithContent(content string) *MockGenerator {
	return &MockGenerator{
		Result: generation.Result{Message: generation.DefaultMessage, Content: content},
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
