package llm

import (
	"context"
	"sync"
)

// MockGenerator implements Generator for testing
type MockGenerator struct {
	mu sync.Mutex

	// GenerateFunc allows customizing the behavior; when nil the mock
	// returns Response.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	Response     string

	// Prompts records every prompt received, in order.
	Prompts []string
}

// NewMockGenerator creates a mock that always answers with response.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

// Generate implements Generator.Generate
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return m.Response, nil
}

// CallCount returns the number of Generate calls made
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt, or "" when never called.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
