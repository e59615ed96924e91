package analysis

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
)

const (
	peakHourCount = 3
	topEmojiCount = 5
)

// ComputeStatistics derives group activity numbers locally, without a
// model call.
func ComputeStatistics(messages []domain.Message) domain.Statistics {
	stats := domain.Statistics{
		HourlyDistribution: make(map[int]int),
	}

	participants := make(map[string]struct{})
	emojiCounts := make(map[string]int)

	for _, msg := range messages {
		stats.MessageCount++
		stats.CharCount += utf8.RuneCountInString(msg.Text)
		stats.HourlyDistribution[time.Unix(msg.Timestamp, 0).Hour()]++

		if msg.SenderID != "" {
			participants[msg.SenderID] = struct{}{}
		}

		collectEmojis(msg.Text, emojiCounts)
	}

	stats.ParticipantCount = len(participants)
	stats.PeakHours = peakHours(stats.HourlyDistribution)
	stats.EmojiStats = summarizeEmojis(emojiCounts)

	return stats
}

// peakHours returns the busiest hours, most active first. Ties break
// toward the earlier hour so the result is deterministic.
func peakHours(distribution map[int]int) []int {
	hours := make([]int, 0, len(distribution))
	for hour, count := range distribution {
		if count > 0 {
			hours = append(hours, hour)
		}
	}

	sort.Slice(hours, func(i, j int) bool {
		if distribution[hours[i]] != distribution[hours[j]] {
			return distribution[hours[i]] > distribution[hours[j]]
		}

		return hours[i] < hours[j]
	})

	if len(hours) > peakHourCount {
		hours = hours[:peakHourCount]
	}

	return hours
}

func summarizeEmojis(counts map[string]int) domain.EmojiStats {
	stats := domain.EmojiStats{UniqueCount: len(counts)}

	type emojiCount struct {
		emoji string
		count int
	}

	ranked := make([]emojiCount, 0, len(counts))
	for emoji, count := range counts {
		stats.TotalCount += count
		ranked = append(ranked, emojiCount{emoji: emoji, count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}

		return ranked[i].emoji < ranked[j].emoji
	})

	if len(ranked) > topEmojiCount {
		ranked = ranked[:topEmojiCount]
	}

	if len(ranked) > 0 {
		stats.TopEmojis = make(map[string]int, len(ranked))
		for _, e := range ranked {
			stats.TopEmojis[e.emoji] = e.count
		}
	}

	return stats
}
