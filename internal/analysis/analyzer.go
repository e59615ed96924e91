package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
	"github.com/chatinsight/chat-insight-bot/internal/core/extract"
	"github.com/chatinsight/chat-insight-bot/internal/core/llm"
	"github.com/chatinsight/chat-insight-bot/internal/platform/config"
	"github.com/chatinsight/chat-insight-bot/internal/platform/observability"
)

// Analyzer runs the extraction tasks over one message window. It holds
// no per-run state; every invocation works only on its arguments.
type Analyzer struct {
	cfg     *config.Config
	gateway llm.Gateway
	logger  *zerolog.Logger
}

func New(cfg *config.Config, gateway llm.Gateway, logger *zerolog.Logger) *Analyzer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Analyzer{cfg: cfg, gateway: gateway, logger: logger}
}

// Analyze runs all three extraction tasks over the window and computes
// local statistics. The tasks share no writable state and run
// concurrently. A failed task contributes an empty slice and zero
// token usage; Analyze itself fails only on caller cancellation.
func (a *Analyzer) Analyze(ctx context.Context, messages []domain.Message) (*domain.AnalysisResult, error) {
	runID := uuid.NewString()
	logger := a.logger.With().Str(logKeyRunID, runID).Logger()

	logger.Info().Int(logKeyMessages, len(messages)).Msg("starting analysis run")

	result := &domain.AnalysisResult{}

	if len(messages) > 0 {
		result.PeriodStart = messages[0].Timestamp
		result.PeriodEnd = messages[len(messages)-1].Timestamp
	}

	var (
		topicsUsage domain.TokenUsage
		titlesUsage domain.TokenUsage
		quotesUsage domain.TokenUsage
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result.Topics, topicsUsage = a.ExtractTopics(gctx, messages)

		return gctx.Err()
	})

	g.Go(func() error {
		result.UserTitles, titlesUsage = a.ExtractUserTitles(gctx, messages)

		return gctx.Err()
	})

	g.Go(func() error {
		result.Quotes, quotesUsage = a.ExtractQuotes(gctx, messages)

		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Statistics = ComputeStatistics(messages)
	result.TokenUsage = topicsUsage.Add(titlesUsage).Add(quotesUsage)

	logger.Info().
		Int("topics", len(result.Topics)).
		Int("user_titles", len(result.UserTitles)).
		Int("quotes", len(result.Quotes)).
		Int("total_tokens", result.TokenUsage.TotalTokens).
		Msg("analysis run finished")

	return result, nil
}

// invoke calls the gateway for one task and normalizes the outcome: a
// gateway failure is logged and reported as not-ok, never propagated.
func (a *Analyzer) invoke(ctx context.Context, task string, req llm.Request) (*llm.Response, domain.TokenUsage, bool) {
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues(task).Observe(time.Since(start).Seconds())
	}()

	resp, err := a.gateway.Invoke(ctx, task, req)
	if err != nil {
		a.logger.Error().Err(err).Str(logKeyTask, task).Msg("llm invocation failed, task yields empty result")

		return nil, domain.TokenUsage{}, false
	}

	usage := domain.TokenUsage{
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	}

	return resp, usage, true
}

// parse runs the tier ladder over a completion and records the outcome.
func (a *Analyzer) parse(task, completion string, schema extract.Schema) extract.Outcome {
	outcome := extract.Parse(completion, schema)

	observability.ParseOutcomes.WithLabelValues(task, string(outcome.Tier)).Inc()

	a.logger.Debug().
		Str(logKeyTask, task).
		Str(logKeyTier, string(outcome.Tier)).
		Int(logKeyRecords, len(outcome.Records)).
		Msg("completion parsed")

	return outcome
}
