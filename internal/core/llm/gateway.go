package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatinsight/chat-insight-bot/internal/platform/config"
	"github.com/chatinsight/chat-insight-bot/internal/platform/observability"
)

type gateway struct {
	cfg    *config.Config
	hosted Provider
	direct Provider
	logger *zerolog.Logger
}

// New creates a Gateway over the two provider variants. Which variant
// serves a call is decided per invocation from configuration presence.
func New(cfg *config.Config, logger *zerolog.Logger) Gateway {
	if logger == nil {
		nopLogger := zerolog.Nop()
		logger = &nopLogger
	}

	return &gateway{
		cfg:    cfg,
		hosted: newHostedProvider(cfg, logger),
		direct: newDirectProvider(cfg, logger),
		logger: logger,
	}
}

// NewWithProviders creates a Gateway with explicit provider instances.
// Used by tests to substitute scripted providers.
func NewWithProviders(cfg *config.Config, hosted, direct Provider, logger *zerolog.Logger) Gateway {
	if logger == nil {
		nopLogger := zerolog.Nop()
		logger = &nopLogger
	}

	return &gateway{
		cfg:    cfg,
		hosted: hosted,
		direct: direct,
		logger: logger,
	}
}

// selectProvider picks the variant for this call. The direct endpoint
// wins whenever its configuration is complete.
func (g *gateway) selectProvider() Provider {
	if g.cfg.DirectConfigured() {
		return g.direct
	}

	return g.hosted
}

func (g *gateway) Invoke(ctx context.Context, task string, req Request) (*Response, error) {
	provider := g.selectProvider()
	attempts := g.cfg.LLMRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := g.attempt(ctx, provider, req)
		if err == nil {
			g.recordSuccess(provider, task, resp)

			return resp, nil
		}

		lastErr = err

		observability.LLMRequests.WithLabelValues(string(provider.Name()), task, StatusError).Inc()

		if errors.Is(err, ErrProviderNotConfigured) {
			g.logger.Error().Err(err).
				Str(logKeyProvider, string(provider.Name())).
				Str(logKeyTask, task).
				Msg("provider not configured, aborting without retry")

			return nil, err
		}

		g.logger.Warn().Err(err).
			Str(logKeyProvider, string(provider.Name())).
			Str(logKeyTask, task).
			Int(logKeyAttempt, attempt).
			Msg("llm attempt failed")

		if attempt < attempts {
			if err := g.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	g.logger.Error().Err(lastErr).
		Str(logKeyProvider, string(provider.Name())).
		Str(logKeyTask, task).
		Int(logKeyAttempts, attempts).
		Msg("all llm attempts failed")

	return nil, fmt.Errorf("%w: %d attempts, last error: %w", ErrAllAttemptsFailed, attempts, lastErr)
}

// attempt performs one bounded completion attempt. Each attempt gets a
// fresh deadline; a cancelled attempt leaves no state behind for the
// next one.
func (g *gateway) attempt(ctx context.Context, provider Provider, req Request) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.LLMTimeout)
	defer cancel()

	return provider.Complete(attemptCtx, req)
}

// backoff sleeps linearly with the attempt number, honoring caller
// cancellation.
func (g *gateway) backoff(ctx context.Context, attempt int) error {
	wait := g.cfg.LLMBackoff * time.Duration(attempt)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *gateway) recordSuccess(provider Provider, task string, resp *Response) {
	name := string(provider.Name())
	observability.LLMRequests.WithLabelValues(name, task, StatusSuccess).Inc()

	if resp.PromptTokens > 0 {
		observability.LLMTokensPrompt.WithLabelValues(name, task).Add(float64(resp.PromptTokens))
	}

	if resp.CompletionTokens > 0 {
		observability.LLMTokensCompletion.WithLabelValues(name, task).Add(float64(resp.CompletionTokens))
	}
}

// Ensure gateway implements Gateway interface.
var _ Gateway = (*gateway)(nil)
