package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
)

func textMessage(text string) domain.Message {
	return domain.Message{
		ID:         "m1",
		Timestamp:  1700000000,
		SenderID:   "u1",
		SenderName: "alice",
		Text:       text,
		Kind:       domain.MessageKindText,
	}
}

func TestFilterMessages_Topics(t *testing.T) {
	th := filterThresholds{minRunes: 3}

	tests := []struct {
		name string
		msg  domain.Message
		keep bool
	}{
		{name: "normal text", msg: textMessage("let's discuss the deploy"), keep: true},
		{name: "empty", msg: textMessage(""), keep: false},
		{name: "whitespace only", msg: textMessage("   \t "), keep: false},
		{name: "command", msg: textMessage("/report today"), keep: false},
		{name: "too short", msg: textMessage("ok"), keep: false},
		{name: "exactly three runes", msg: textMessage("yes"), keep: true},
		{name: "non-text kind", msg: func() domain.Message {
			m := textMessage("sticker")
			m.Kind = "image"

			return m
		}(), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterMessages([]domain.Message{tt.msg}, TaskTopics, th)

			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("filterMessages() kept = %v, want %v", kept, tt.keep)
			}
		})
	}
}

func TestFilterMessages_Quotes(t *testing.T) {
	th := filterThresholds{minRunes: 10, maxRunes: 200}

	tests := []struct {
		name string
		text string
		keep bool
	}{
		{name: "quotable", text: "the cloud is just someone else's computer", keep: true},
		{name: "below minimum", text: "short one", keep: false},
		{name: "above maximum", text: strings.Repeat("a", 201), keep: false},
		{name: "http url", text: "https://example.com/some/long/path", keep: false},
		{name: "www url", text: "www.example.com/another/path", keep: false},
		{name: "emoji saturated", text: "\U0001F602 \U0001F602 \U0001F602 \U0001F602 \U0001F602 \U0001F602", keep: false},
		{name: "occasional emoji", text: "that deploy went surprisingly well \U0001F389", keep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterMessages([]domain.Message{textMessage(tt.text)}, TaskQuotes, th)

			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("filterMessages(%q) kept = %v, want %v", tt.text, kept, tt.keep)
			}
		})
	}
}

func TestFilterMessages_Idempotent(t *testing.T) {
	messages := []domain.Message{
		textMessage("a perfectly reasonable sentence for analysis"),
		textMessage(""),
		textMessage("/cmd"),
		textMessage("another perfectly reasonable sentence"),
	}

	th := filterThresholds{minRunes: 10, maxRunes: 200}

	once := filterMessages(messages, TaskQuotes, th)
	twice := filterMessages(once, TaskQuotes, th)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering a filtered list changed it: %v vs %v", once, twice)
	}
}

func TestFilterMessages_PreservesOrder(t *testing.T) {
	messages := []domain.Message{
		textMessage("first message in the window"),
		textMessage("/skip"),
		textMessage("second message in the window"),
	}

	got := filterMessages(messages, TaskTopics, filterThresholds{minRunes: 3})

	if len(got) != 2 {
		t.Fatalf("filterMessages() kept %d, want 2", len(got))
	}

	if got[0].Text != messages[0].Text || got[1].Text != messages[2].Text {
		t.Errorf("filterMessages() reordered candidates: %v", got)
	}
}
