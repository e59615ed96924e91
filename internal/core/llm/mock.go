package llm

import "context"

// MockProvider is a scripted Provider for tests.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, req Request) (*Response, error)
	Available    bool
	Calls        int
}

func (m *MockProvider) Name() ProviderName {
	return ProviderMock
}

func (m *MockProvider) IsAvailable() bool {
	return m.Available
}

func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	m.Calls++

	return m.CompleteFunc(ctx, req)
}

// Ensure MockProvider implements Provider interface.
var _ Provider = (*MockProvider)(nil)
