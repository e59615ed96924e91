// Package analysis runs the three chat-insight extraction tasks over a
// window of messages: discussion topics, per-participant titles, and
// notable quotes. Each task shares the same pipeline shape: filter
// candidates, build a prompt, invoke the model, parse the completion
// into records, and assemble domain objects.
package analysis

// Task names, used as metric labels and log fields.
const (
	TaskTopics     = "topics"
	TaskUserTitles = "user_titles"
	TaskQuotes     = "quotes"
)

// Per-task completion tuning. Topic extraction reads the whole
// transcript and needs the largest output window; quotes benefit from
// a higher temperature.
const (
	topicsMaxTokens   = 10000
	topicsTemperature = 0.6

	titlesMaxTokens   = 1500
	titlesTemperature = 0.5

	quotesMaxTokens   = 1500
	quotesTemperature = 0.7
)

const (
	logKeyTask     = "task"
	logKeyRunID    = "run_id"
	logKeyTier     = "tier"
	logKeyRecords  = "records"
	logKeyMessages = "messages"
)
