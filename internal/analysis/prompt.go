package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
)

var quoteNormalizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

// sanitizeText prepares message text for embedding into a prompt:
// non-ASCII quotation marks become their ASCII equivalents, embedded
// newlines and tabs collapse to spaces, and C0/C1 control characters
// are stripped.
func sanitizeText(text string) string {
	text = quoteNormalizer.Replace(text)

	text = strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}

		return r
	}, text)

	return strings.TrimSpace(text)
}

// formatTranscript renders messages chronologically as
// "[HH:MM] name: text" lines.
func formatTranscript(messages []domain.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		ts := time.Unix(msg.Timestamp, 0).Format("15:04")
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", ts, msg.SenderName, sanitizeText(msg.Text)))
	}

	return strings.Join(lines, "\n")
}

const jsonOutputRules = `Return a single JSON array and nothing else. Rules:
1. Use ASCII double quotes only, never typographic quotes
2. Escape double quotes inside string values as \"
3. Separate objects and array elements with commas
4. Do not wrap the output in markdown code fences
5. Do not add any text before or after the JSON array`

const topicsPromptTemplate = `You are an assistant summarizing a group chat. Analyze the chat log below and extract up to %d major discussion topics.

For each topic provide:
1. A short title capturing the subject
2. The main participants, up to five names
3. A concrete description of what was discussed, naming who said what and what was concluded. Avoid vague summaries; prefer specifics a reader can learn from without seeing the log.

Chat log:
%s

%s

Each record has exactly these fields:
[
  {"title": "topic title", "participants": ["name1", "name2"], "description": "what was discussed and concluded", "message_count": 0}
]`

const userTitlesPromptTemplate = `Assign a fitting title and a personality tag to each of the following chat participants, covering at most %d of them. Every participant gets exactly one title, and every title may be used at most once.

Suggested titles, extend freely when none fits:
- Chatterbox: posts constantly, mostly light content
- Tech Expert: frequently discusses technical subjects
- Night Owl: often active late at night
- Emoji Arsenal: communicates heavily through emoji
- Icebreaker: regularly opens new conversations
- The Essayist: writes long, elaborate messages
- Reply Machine: mostly responds to others

Participant data:
%s

%s

Each record has exactly these fields:
[
  {"display_name": "participant name", "subject_id": "participant id", "title": "assigned title", "personality_tag": "short tag", "rationale": "why this title fits"}
]`

const quotesPromptTemplate = `Pick up to %d of the most memorable quotes from the chat log below. A good quote is surprising, witty, or takes an unexpected angle; skip plain meme references and filler.

For each quote provide:
1. The original text, kept verbatim
2. The sender's name exactly as it appears in the log
3. A short reason explaining what makes it stand out

Chat log:
%s

%s

Each record has exactly these fields:
[
  {"content": "the quote verbatim", "sender_display_name": "sender name", "rationale": "why it stands out"}
]`

func buildTopicsPrompt(messages []domain.Message, maxTopics int) string {
	return fmt.Sprintf(topicsPromptTemplate, maxTopics, formatTranscript(messages), jsonOutputRules)
}

func buildUserTitlesPrompt(summaries string, maxTitles int) string {
	return fmt.Sprintf(userTitlesPromptTemplate, maxTitles, summaries, jsonOutputRules)
}

func buildQuotesPrompt(messages []domain.Message, maxQuotes int) string {
	return fmt.Sprintf(quotesPromptTemplate, maxQuotes, formatTranscript(messages), jsonOutputRules)
}
