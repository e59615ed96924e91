package analysis

import (
	"context"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
	"github.com/chatinsight/chat-insight-bot/internal/core/extract"
	"github.com/chatinsight/chat-insight-bot/internal/core/llm"
)

const maxTopicParticipants = 5

// defaultTopic is the placeholder substituted when every parse tier
// comes back empty. Substitution happens here, never inside the parser.
func defaultTopic() domain.Topic {
	return domain.Topic{
		Title:        "Group Discussion",
		Participants: []string{"group members"},
		Description:  "The group covered a variety of topics today.",
	}
}

// ExtractTopics identifies the main discussion topics in the window.
func (a *Analyzer) ExtractTopics(ctx context.Context, messages []domain.Message) ([]domain.Topic, domain.TokenUsage) {
	candidates := filterMessages(messages, TaskTopics, a.topicThresholds())
	if len(candidates) == 0 {
		a.logger.Info().Str(logKeyTask, TaskTopics).Msg("no candidate messages, skipping")

		return nil, domain.TokenUsage{}
	}

	prompt := buildTopicsPrompt(candidates, a.cfg.MaxTopics)

	resp, usage, ok := a.invoke(ctx, TaskTopics, llm.Request{
		Prompt:      prompt,
		MaxTokens:   topicsMaxTokens,
		Temperature: topicsTemperature,
	})
	if !ok {
		return nil, domain.TokenUsage{}
	}

	outcome := a.parse(TaskTopics, resp.CompletionText, topicSchema(a.cfg.MaxTopics))
	if outcome.Tier == extract.TierFallbackDefault {
		return []domain.Topic{defaultTopic()}, usage
	}

	return assembleTopics(outcome.Records), usage
}

func assembleTopics(records []extract.Record) []domain.Topic {
	topics := make([]domain.Topic, 0, len(records))

	for _, r := range records {
		participants := r.StringList(fieldParticipants)
		if len(participants) > maxTopicParticipants {
			participants = participants[:maxTopicParticipants]
		}

		topics = append(topics, domain.Topic{
			Title:        r.String(fieldTitle),
			Participants: participants,
			Description:  r.String(fieldDescription),
			MessageCount: r.Int(fieldMessageCount),
		})
	}

	return topics
}
