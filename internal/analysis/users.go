package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
	"github.com/chatinsight/chat-insight-bot/internal/core/extract"
	"github.com/chatinsight/chat-insight-bot/internal/core/llm"
)

// ComputeUserMetrics aggregates per-sender activity counters from the
// message list. No model call is involved.
func ComputeUserMetrics(messages []domain.Message) map[string]domain.UserMetrics {
	metrics := make(map[string]domain.UserMetrics)

	for _, msg := range messages {
		if msg.SenderID == "" {
			continue
		}

		m := metrics[msg.SenderID]
		if m.HourlyDistribution == nil {
			m.HourlyDistribution = make(map[int]int)
		}

		m.SenderName = msg.SenderName
		m.SenderAvatar = msg.SenderAvatar
		m.MessageCount++
		m.CharCount += utf8.RuneCountInString(msg.Text)
		m.EmojiCount += countEmojiRuns(msg.Text)
		m.HourlyDistribution[time.Unix(msg.Timestamp, 0).Hour()]++

		if strings.HasPrefix(strings.TrimSpace(msg.Text), "@") {
			m.ReplyCount++
		}

		metrics[msg.SenderID] = m
	}

	for id, m := range metrics {
		m.AvgMessageLength = float64(m.CharCount) / float64(m.MessageCount)
		metrics[id] = m
	}

	return metrics
}

type rankedUser struct {
	id      string
	metrics domain.UserMetrics
}

// rankUsers drops senders below the activity floor and returns the
// remaining ones ordered by message count, capped at limit.
func rankUsers(metrics map[string]domain.UserMetrics, minMessages, limit int) []rankedUser {
	ranked := make([]rankedUser, 0, len(metrics))
	for id, m := range metrics {
		if m.MessageCount < minMessages {
			continue
		}

		ranked = append(ranked, rankedUser{id: id, metrics: m})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].metrics.MessageCount != ranked[j].metrics.MessageCount {
			return ranked[i].metrics.MessageCount > ranked[j].metrics.MessageCount
		}

		return ranked[i].id < ranked[j].id
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// summarizeUsers renders one line per ranked user with the behavioral
// ratios the title prompt reasons about.
func summarizeUsers(ranked []rankedUser) string {
	lines := make([]string, 0, len(ranked))

	for _, u := range ranked {
		m := u.metrics

		nightMessages := 0
		for hour := 0; hour < 6; hour++ {
			nightMessages += m.HourlyDistribution[hour]
		}

		total := float64(m.MessageCount)
		lines = append(lines, fmt.Sprintf(
			"- %s (ID:%s): %d messages, avg %.1f chars, emoji ratio %.2f, night ratio %.2f, reply ratio %.2f",
			m.SenderName, u.id, m.MessageCount, m.AvgMessageLength,
			float64(m.EmojiCount)/total,
			float64(nightMessages)/total,
			float64(m.ReplyCount)/total,
		))
	}

	return strings.Join(lines, "\n")
}

// ExtractUserTitles assigns a behavioral title to the most active
// participants. When no participant clears the activity floor the
// model is never called.
func (a *Analyzer) ExtractUserTitles(ctx context.Context, messages []domain.Message) ([]domain.UserTitle, domain.TokenUsage) {
	metrics := ComputeUserMetrics(messages)

	ranked := rankUsers(metrics, a.cfg.MinUserMessages, a.cfg.MaxUserTitles)
	if len(ranked) == 0 {
		a.logger.Info().Str(logKeyTask, TaskUserTitles).Msg("no participants above activity floor, skipping")

		return nil, domain.TokenUsage{}
	}

	prompt := buildUserTitlesPrompt(summarizeUsers(ranked), a.cfg.MaxUserTitles)

	resp, usage, ok := a.invoke(ctx, TaskUserTitles, llm.Request{
		Prompt:      prompt,
		MaxTokens:   titlesMaxTokens,
		Temperature: titlesTemperature,
	})
	if !ok {
		return nil, domain.TokenUsage{}
	}

	outcome := a.parse(TaskUserTitles, resp.CompletionText, userTitleSchema(a.cfg.MaxUserTitles))

	return assembleUserTitles(outcome.Records, metrics, ranked), usage
}

// assembleUserTitles maps parsed records back onto known participants.
// The model echoes the subject id from the prompt; when it drops or
// garbles it, the display name resolves the participant instead.
func assembleUserTitles(records []extract.Record, metrics map[string]domain.UserMetrics, ranked []rankedUser) []domain.UserTitle {
	nameToID := make(map[string]string, len(ranked))
	for _, u := range ranked {
		nameToID[u.metrics.SenderName] = u.id
	}

	titles := make([]domain.UserTitle, 0, len(records))

	for _, r := range records {
		id := r.String(fieldSubjectID)
		if _, known := metrics[id]; !known {
			id = nameToID[r.String(fieldDisplayName)]
		}

		m := metrics[id]

		name := r.String(fieldDisplayName)
		if m.SenderName != "" {
			name = m.SenderName
		}

		titles = append(titles, domain.UserTitle{
			SenderID:        id,
			Name:            name,
			Avatar:          m.SenderAvatar,
			Title:           r.String(fieldTitle),
			PersonalityType: r.String(fieldPersonalityTag),
			Reason:          r.String(fieldRationale),
			Metrics:         m,
		})
	}

	return titles
}
