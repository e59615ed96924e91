package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/chatinsight/chat-insight-bot/internal/platform/config"
)

// hostedProvider talks to the platform-managed completion API through
// the official client. It is selected when no direct endpoint is
// configured.
type hostedProvider struct {
	cfg         *config.Config
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

func newHostedProvider(cfg *config.Config, logger *zerolog.Logger) *hostedProvider {
	rps := cfg.RateLimitRPS
	if rps == 0 {
		rps = 1
	}

	return &hostedProvider{
		cfg:         cfg,
		client:      openai.NewClient(cfg.LLMAPIKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *hostedProvider) Name() ProviderName {
	return ProviderHosted
}

func (p *hostedProvider) IsAvailable() bool {
	return p.cfg.LLMAPIKey != ""
}

func (p *hostedProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("%w: missing hosted provider API key", ErrProviderNotConfigured)
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf(errRateLimiter, err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.cfg.LLMModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("hosted chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response has no choices", ErrProviderFormat)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, ErrEmptyCompletion
	}

	return &Response{
		CompletionText:   content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// Ensure hostedProvider implements Provider interface.
var _ Provider = (*hostedProvider)(nil)
