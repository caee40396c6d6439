package llm

import (
	"context"
	"sync"
)

// MockProvider is a scripted LLMProvider for tests
type MockProvider struct {
	mu        sync.Mutex
	Response  string
	Err       error
	calls     int
	histories [][]Message
}

var _ LLMProvider = (*MockProvider)(nil)

func NewMockProvider(response string, err error) *MockProvider {
	return &MockProvider{Response: response, Err: err}
}

func (m *MockProvider) Chat(ctx context.Context, history []Message, _ ...Option) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.histories = append(m.histories, append([]Message(nil), history...))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return m.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, opts...)
}

// Calls returns how many times the model was invoked
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastHistory returns the messages of the most recent call
func (m *MockProvider) LastHistory() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.histories) == 0 {
		return nil
	}
	return m.histories[len(m.histories)-1]
}
