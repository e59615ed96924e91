// Package domain defines the data types shared by the analysis pipeline.
// All values are created per analysis run and never mutated by the engine.
package domain

// Message kind values as produced by the upstream message source.
const (
	MessageKindText = "text"
)

// Message is a single normalized chat message. The engine only reads
// Text, Timestamp and the sender fields; it never mutates a message.
type Message struct {
	ID           string `json:"id"`
	Timestamp    int64  `json:"timestamp"`
	SenderID     string `json:"sender_id"`
	SenderName   string `json:"sender_name"`
	SenderAvatar string `json:"sender_avatar"`
	Text         string `json:"text"`
	Kind         string `json:"kind"`
}

// Topic is a discussion topic extracted from the transcript.
type Topic struct {
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
	Description  string   `json:"description"`
	MessageCount int      `json:"message_count"`
}

// UserMetrics holds per-sender activity counters computed locally
// before the user-title prompt is built.
type UserMetrics struct {
	MessageCount       int         `json:"message_count"`
	CharCount          int         `json:"char_count"`
	AvgMessageLength   float64     `json:"avg_message_length"`
	EmojiCount         int         `json:"emoji_count"`
	ReplyCount         int         `json:"reply_count"`
	HourlyDistribution map[int]int `json:"hourly_distribution,omitempty"`
	SenderName         string      `json:"-"`
	SenderAvatar       string      `json:"-"`
}

// UserTitle is a behavioral title assigned to one participant.
type UserTitle struct {
	SenderID        string      `json:"sender_id"`
	Name            string      `json:"name"`
	Avatar          string      `json:"avatar"`
	Title           string      `json:"title"`
	PersonalityType string      `json:"personality_type"`
	Reason          string      `json:"reason"`
	Metrics         UserMetrics `json:"metrics"`
}

// Quote is a notable quotation attributed to a sender.
type Quote struct {
	Content      string `json:"content"`
	SenderName   string `json:"sender_name"`
	SenderAvatar string `json:"sender_avatar"`
	Timestamp    int64  `json:"timestamp"`
	Reason       string `json:"reason"`
}

// EmojiStats aggregates emoji usage across the analyzed window.
type EmojiStats struct {
	TotalCount  int            `json:"total_count"`
	UniqueCount int            `json:"unique_count"`
	TopEmojis   map[string]int `json:"top_emojis,omitempty"`
}

// Statistics holds locally computed group activity numbers.
// No LLM call is involved in producing them.
type Statistics struct {
	MessageCount       int         `json:"message_count"`
	CharCount          int         `json:"char_count"`
	ParticipantCount   int         `json:"participant_count"`
	HourlyDistribution map[int]int `json:"hourly_distribution,omitempty"`
	PeakHours          []int       `json:"peak_hours,omitempty"`
	EmojiStats         EmojiStats  `json:"emoji_stats"`
}

// AnalysisResult is the complete output of one analysis run.
type AnalysisResult struct {
	Topics      []Topic     `json:"topics"`
	UserTitles  []UserTitle `json:"user_titles"`
	Quotes      []Quote     `json:"quotes"`
	Statistics  Statistics  `json:"statistics"`
	TokenUsage  TokenUsage  `json:"token_usage"`
	PeriodStart int64       `json:"period_start"`
	PeriodEnd   int64       `json:"period_end"`
}
