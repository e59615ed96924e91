package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chatinsight/chat-insight-bot/internal/platform/config"
)

var errTransient = errors.New("connection reset")

func testConfig() *config.Config {
	return &config.Config{
		LLMAPIKey:  "test-key",
		LLMModel:   "gpt-4o-mini",
		LLMTimeout: time.Second,
		LLMRetries: 3,
		LLMBackoff: time.Millisecond,
	}
}

func TestInvoke_SuccessFirstAttempt(t *testing.T) {
	want := &Response{CompletionText: "[]", PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12}
	mock := &MockProvider{
		Available: true,
		CompleteFunc: func(_ context.Context, _ Request) (*Response, error) {
			return want, nil
		},
	}

	g := NewWithProviders(testConfig(), mock, mock, nil)

	got, err := g.Invoke(context.Background(), "topics", Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if got.CompletionText != want.CompletionText || got.TotalTokens != want.TotalTokens {
		t.Errorf("Invoke() = %+v, want %+v", got, want)
	}

	if mock.Calls != 1 {
		t.Errorf("provider called %d times, want 1", mock.Calls)
	}
}

func TestInvoke_RetriesThenSucceeds(t *testing.T) {
	mock := &MockProvider{Available: true}
	mock.CompleteFunc = func(_ context.Context, _ Request) (*Response, error) {
		if mock.Calls < 3 {
			return nil, errTransient
		}

		return &Response{CompletionText: "ok"}, nil
	}

	g := NewWithProviders(testConfig(), mock, mock, nil)

	got, err := g.Invoke(context.Background(), "quotes", Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if got.CompletionText != "ok" {
		t.Errorf("CompletionText = %q, want %q", got.CompletionText, "ok")
	}

	if mock.Calls != 3 {
		t.Errorf("provider called %d times, want 3", mock.Calls)
	}
}

func TestInvoke_ExhaustsAttempts(t *testing.T) {
	mock := &MockProvider{
		Available: true,
		CompleteFunc: func(_ context.Context, _ Request) (*Response, error) {
			return nil, errTransient
		},
	}

	g := NewWithProviders(testConfig(), mock, mock, nil)

	_, err := g.Invoke(context.Background(), "topics", Request{Prompt: "p"})
	if !errors.Is(err, ErrAllAttemptsFailed) {
		t.Errorf("Invoke() error = %v, want ErrAllAttemptsFailed", err)
	}

	if !errors.Is(err, errTransient) {
		t.Errorf("Invoke() error = %v, want wrapped last error", err)
	}

	if mock.Calls != 3 {
		t.Errorf("provider called %d times, want 3", mock.Calls)
	}
}

func TestInvoke_ConfigurationErrorNotRetried(t *testing.T) {
	mock := &MockProvider{
		CompleteFunc: func(_ context.Context, _ Request) (*Response, error) {
			return nil, ErrProviderNotConfigured
		},
	}

	g := NewWithProviders(testConfig(), mock, mock, nil)

	_, err := g.Invoke(context.Background(), "user_titles", Request{Prompt: "p"})
	if !errors.Is(err, ErrProviderNotConfigured) {
		t.Errorf("Invoke() error = %v, want ErrProviderNotConfigured", err)
	}

	if mock.Calls != 1 {
		t.Errorf("provider called %d times, want 1 (no retry)", mock.Calls)
	}
}

func TestInvoke_SelectsDirectWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.DirectBaseURL = "https://llm.internal/v1/chat/completions"
	cfg.DirectAPIKey = "sk-direct"
	cfg.DirectModel = "qwen-plus"

	hosted := &MockProvider{
		Available: true,
		CompleteFunc: func(_ context.Context, _ Request) (*Response, error) {
			return &Response{CompletionText: "hosted"}, nil
		},
	}
	direct := &MockProvider{
		Available: true,
		CompleteFunc: func(_ context.Context, _ Request) (*Response, error) {
			return &Response{CompletionText: "direct"}, nil
		},
	}

	g := NewWithProviders(cfg, hosted, direct, nil)

	got, err := g.Invoke(context.Background(), "topics", Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if got.CompletionText != "direct" {
		t.Errorf("CompletionText = %q, want %q", got.CompletionText, "direct")
	}

	if hosted.Calls != 0 {
		t.Errorf("hosted provider called %d times, want 0", hosted.Calls)
	}
}

func TestInvoke_CancelledDuringBackoff(t *testing.T) {
	cfg := testConfig()
	cfg.LLMBackoff = time.Minute

	mock := &MockProvider{
		Available: true,
		CompleteFunc: func(_ context.Context, _ Request) (*Response, error) {
			return nil, errTransient
		},
	}

	g := NewWithProviders(cfg, mock, mock, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Invoke(ctx, "topics", Request{Prompt: "p"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Invoke() error = %v, want context.DeadlineExceeded", err)
	}

	if mock.Calls != 1 {
		t.Errorf("provider called %d times, want 1", mock.Calls)
	}
}
