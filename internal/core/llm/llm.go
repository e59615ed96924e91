// Package llm abstracts "ask a language model for text" behind a
// retry/backoff policy and a provider-variant switch. Two variants
// exist: a hosted provider driven by the platform API key, and a
// directly configured OpenAI-compatible HTTP endpoint. The variant is
// selected once per call based on configuration presence.
package llm

import (
	"context"
	"errors"
)

// Provider errors. The gateway retries transport and format errors;
// configuration errors are fatal for the call.
var (
	// ErrProviderNotConfigured indicates no usable provider configuration.
	ErrProviderNotConfigured = errors.New("llm provider not configured")

	// ErrProviderFormat indicates the provider returned an unexpected shape.
	ErrProviderFormat = errors.New("unexpected provider response format")

	// ErrEmptyCompletion indicates the provider returned no completion text.
	ErrEmptyCompletion = errors.New("empty completion from provider")

	// ErrAllAttemptsFailed indicates every retry attempt failed.
	ErrAllAttemptsFailed = errors.New("all llm attempts failed")

	// ErrAPIFailure indicates a non-2xx response from the direct endpoint.
	ErrAPIFailure = errors.New("llm endpoint error")
)

// ProviderName identifies an LLM provider variant.
type ProviderName string

const (
	ProviderHosted ProviderName = "hosted"
	ProviderDirect ProviderName = "direct"
	ProviderMock   ProviderName = "mock"
)

// Request describes one completion request.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Response is the normalized provider reply. Token counters default to
// zero when the provider does not report usage.
type Response struct {
	CompletionText   string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Provider is a single completion backend.
type Provider interface {
	// Name returns the provider identifier.
	Name() ProviderName

	// IsAvailable reports whether the provider is configured.
	IsAvailable() bool

	// Complete performs one completion attempt. The context carries the
	// per-attempt deadline; implementations must release connection
	// resources when it is cancelled.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Gateway invokes a provider with timeout, retry and linear backoff.
// Invoke never panics; after exhausting attempts it returns an error
// wrapping ErrAllAttemptsFailed, which callers map to an empty result.
type Gateway interface {
	Invoke(ctx context.Context, task string, req Request) (*Response, error)
}
