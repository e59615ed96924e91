package analysis

import (
	"context"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
	"github.com/chatinsight/chat-insight-bot/internal/core/extract"
	"github.com/chatinsight/chat-insight-bot/internal/core/llm"
)

// senderInfo is what the quote assembler can back-fill about a sender
// seen in the candidate list.
type senderInfo struct {
	avatar    string
	timestamp int64
}

// buildSenderLookup indexes candidates by the display name as rendered
// in the prompt. The timestamp kept is the sender's most recent one.
func buildSenderLookup(messages []domain.Message) map[string]senderInfo {
	lookup := make(map[string]senderInfo)

	for _, msg := range messages {
		info, seen := lookup[msg.SenderName]
		if !seen || msg.Timestamp > info.timestamp {
			lookup[msg.SenderName] = senderInfo{
				avatar:    msg.SenderAvatar,
				timestamp: msg.Timestamp,
			}
		}
	}

	return lookup
}

// ExtractQuotes picks the most notable quotations from the window.
func (a *Analyzer) ExtractQuotes(ctx context.Context, messages []domain.Message) ([]domain.Quote, domain.TokenUsage) {
	candidates := filterMessages(messages, TaskQuotes, a.quoteThresholds())
	if len(candidates) == 0 {
		a.logger.Info().Str(logKeyTask, TaskQuotes).Msg("no candidate messages, skipping")

		return nil, domain.TokenUsage{}
	}

	prompt := buildQuotesPrompt(candidates, a.cfg.MaxQuotes)

	resp, usage, ok := a.invoke(ctx, TaskQuotes, llm.Request{
		Prompt:      prompt,
		MaxTokens:   quotesMaxTokens,
		Temperature: quotesTemperature,
	})
	if !ok {
		return nil, domain.TokenUsage{}
	}

	outcome := a.parse(TaskQuotes, resp.CompletionText, quoteSchema(a.cfg.MaxQuotes))

	return assembleQuotes(outcome.Records, buildSenderLookup(candidates)), usage
}

// assembleQuotes resolves each record's sender against the lookup. An
// unknown sender degrades to empty metadata; only a missing content
// field drops the record, and the parser already enforced that.
func assembleQuotes(records []extract.Record, lookup map[string]senderInfo) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(records))

	for _, r := range records {
		senderName := r.String(fieldSenderName)
		info := lookup[senderName]

		timestamp := int64(r.Int(fieldTimestamp))
		if timestamp == 0 {
			timestamp = info.timestamp
		}

		quotes = append(quotes, domain.Quote{
			Content:      r.String(fieldContent),
			SenderName:   senderName,
			SenderAvatar: info.avatar,
			Timestamp:    timestamp,
			Reason:       r.String(fieldRationale),
		})
	}

	return quotes
}
