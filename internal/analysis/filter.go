package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
	"github.com/chatinsight/chat-insight-bot/internal/platform/observability"
)

// Filter drop reasons, used as metric labels.
const (
	reasonNonText    = "non_text"
	reasonEmpty      = "empty"
	reasonCommand    = "command"
	reasonTooShort   = "too_short"
	reasonTooLong    = "too_long"
	reasonURL        = "url"
	reasonEmojiHeavy = "emoji_heavy"
)

var urlPrefixes = []string{"http://", "https://", "www."}

// filterThresholds carries the per-task quality cutoffs. Zero values
// disable the corresponding check.
type filterThresholds struct {
	minRunes int
	maxRunes int
}

// filterMessages screens raw messages down to the candidate set worth
// sending to the model. It is a pure function of its inputs and
// idempotent: filtering an already filtered list changes nothing.
func filterMessages(messages []domain.Message, task string, th filterThresholds) []domain.Message {
	candidates := make([]domain.Message, 0, len(messages))

	for _, msg := range messages {
		if reason, dropped := dropReason(msg, task, th); dropped {
			observability.MessagesFiltered.WithLabelValues(task, reason).Inc()

			continue
		}

		candidates = append(candidates, msg)
	}

	return candidates
}

func dropReason(msg domain.Message, task string, th filterThresholds) (string, bool) {
	if msg.Kind != "" && msg.Kind != domain.MessageKindText {
		return reasonNonText, true
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return reasonEmpty, true
	}

	if strings.HasPrefix(text, "/") {
		return reasonCommand, true
	}

	length := utf8.RuneCountInString(text)

	if th.minRunes > 0 && length < th.minRunes {
		return reasonTooShort, true
	}

	if th.maxRunes > 0 && length > th.maxRunes {
		return reasonTooLong, true
	}

	if task == TaskQuotes {
		for _, prefix := range urlPrefixes {
			if strings.HasPrefix(text, prefix) {
				return reasonURL, true
			}
		}

		if countEmojiRuns(text) > length/3 {
			return reasonEmojiHeavy, true
		}
	}

	return "", false
}

func (a *Analyzer) topicThresholds() filterThresholds {
	return filterThresholds{minRunes: 3}
}

func (a *Analyzer) quoteThresholds() filterThresholds {
	return filterThresholds{
		minRunes: a.cfg.QuoteMinLength,
		maxRunes: a.cfg.QuoteMaxLength,
	}
}
