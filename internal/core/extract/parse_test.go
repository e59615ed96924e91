package extract

import (
	"fmt"
	"reflect"
	"testing"
)

func topicSchema() Schema {
	return Schema{
		Name: "topic",
		Fields: []Field{
			{Name: "title", Kind: FieldString, Required: true},
			{Name: "participants", Kind: FieldStringList, Required: true},
			{Name: "description", Kind: FieldString, Required: true},
			{Name: "message_count", Kind: FieldNumber},
		},
		MaxRecords: 5,
	}
}

func TestParse_Tiers(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantTier    Tier
		wantRecords int
	}{
		{
			name:        "clean array",
			text:        `[{"title": "Release planning", "participants": ["alice", "bob"], "description": "Scoping the next release.", "message_count": 12}]`,
			wantTier:    TierStrict,
			wantRecords: 1,
		},
		{
			name:        "clean array with surrounding whitespace",
			text:        "\n  [{\"title\": \"Standup\", \"participants\": [\"carol\"], \"description\": \"Daily sync.\"}]  \n",
			wantTier:    TierStrict,
			wantRecords: 1,
		},
		{
			name:        "valid array wrapped in prose",
			text:        "Here are the topics:\n[{\"title\": \"Deploy\", \"participants\": [\"dave\"], \"description\": \"Rolling out v2.\"}]\nLet me know if you need more.",
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "fenced code block",
			text:        "```json\n[{\"title\": \"Oncall\", \"participants\": [\"erin\"], \"description\": \"Pager handoff.\"}]\n```",
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "truncated array recovers complete objects",
			text:        `[{"title": "First", "participants": ["a"], "description": "Done."}, {"title": "Second", "participants": ["b"], "descr`,
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "curly quotes normalized",
			text:        "[{“title”: “Quotes”, “participants”: [“frank”], “description”: “Typography.”}]",
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "raw newline inside string value",
			text:        "[{\"title\": \"Line\none\", \"participants\": [\"gus\"], \"description\": \"Broken\nstring.\"}]",
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "bare keys and trailing comma",
			text:        `[{title: "Informal", participants: ["gina"], description: "Loose JSON.",}]`,
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "missing comma between objects",
			text:        `[{"title": "One", "participants": ["a"], "description": "First."} {"title": "Two", "participants": ["b"], "description": "Second."}]`,
			wantTier:    TierRepaired,
			wantRecords: 2,
		},
		{
			name:        "single object without array",
			text:        `{"title": "Solo", "participants": ["hank"], "description": "One record."}`,
			wantTier:    TierRepaired,
			wantRecords: 1,
		},
		{
			name:        "fields recognizable only by pattern",
			text:        `{"title": "Scraped", "participants": ["ivan"], "description": "From broken text" stray tail}`,
			wantTier:    TierRegex,
			wantRecords: 1,
		},
		{
			name:        "plain refusal text",
			text:        "I'm sorry, I cannot analyze this conversation.",
			wantTier:    TierFallbackDefault,
			wantRecords: 0,
		},
		{
			name:        "empty completion",
			text:        "",
			wantTier:    TierFallbackDefault,
			wantRecords: 0,
		},
		{
			name:        "empty array",
			text:        "[]",
			wantTier:    TierStrict,
			wantRecords: 0,
		},
		{
			name:        "empty array wrapped in prose",
			text:        "No notable topics were found.\n\n[]",
			wantTier:    TierRepaired,
			wantRecords: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text, topicSchema())

			if got.Tier != tt.wantTier {
				t.Errorf("Parse() tier = %s, want %s", got.Tier, tt.wantTier)
			}

			if len(got.Records) != tt.wantRecords {
				t.Errorf("Parse() records = %d, want %d", len(got.Records), tt.wantRecords)
			}
		})
	}
}

func TestParse_CollapsesNewlinesInValues(t *testing.T) {
	text := "[{\"title\": \"A\nB\", \"participants\": [\"carol\"], \"description\": \"Spans\ttwo\nlines.\"}]"

	got := Parse(text, topicSchema())
	if got.Tier != TierRepaired {
		t.Fatalf("Parse() tier = %s, want %s", got.Tier, TierRepaired)
	}

	if len(got.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(got.Records))
	}

	r := got.Records[0]

	if r.String("title") != "A B" {
		t.Errorf("title = %q, want %q", r.String("title"), "A B")
	}

	if r.String("description") != "Spans two lines." {
		t.Errorf("description = %q, want %q", r.String("description"), "Spans two lines.")
	}
}

func TestParse_RecordValues(t *testing.T) {
	text := `[{"title": "  Release  ", "participants": ["alice", " bob ", ""], "description": "Ship it.", "message_count": 7}]`

	got := Parse(text, topicSchema())
	if len(got.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(got.Records))
	}

	r := got.Records[0]

	if r.String("title") != "Release" {
		t.Errorf("title = %q, want trimmed %q", r.String("title"), "Release")
	}

	if want := []string{"alice", "bob"}; !reflect.DeepEqual(r.StringList("participants"), want) {
		t.Errorf("participants = %v, want %v", r.StringList("participants"), want)
	}

	if r.Int("message_count") != 7 {
		t.Errorf("message_count = %d, want 7", r.Int("message_count"))
	}
}

func TestParse_DropsInvalidRecordsKeepsValid(t *testing.T) {
	text := `[
		{"title": "Valid", "participants": ["a"], "description": "Kept."},
		{"title": "", "participants": ["b"], "description": "Empty title."},
		{"participants": ["c"], "description": "Missing title."},
		{"title": "Wrong type", "participants": 42, "description": "Bad list."}
	]`

	got := Parse(text, topicSchema())

	if len(got.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(got.Records))
	}

	if got.Records[0].String("title") != "Valid" {
		t.Errorf("surviving title = %q", got.Records[0].String("title"))
	}
}

func TestParse_CapsRecordCount(t *testing.T) {
	text := "["
	for i := 0; i < 9; i++ {
		if i > 0 {
			text += ","
		}

		text += fmt.Sprintf(`{"title": "T%d", "participants": ["u"], "description": "D%d"}`, i, i)
	}
	text += "]"

	got := Parse(text, topicSchema())

	if len(got.Records) != 5 {
		t.Fatalf("Parse() records = %d, want cap of 5", len(got.Records))
	}

	if got.Records[0].String("title") != "T0" || got.Records[4].String("title") != "T4" {
		t.Errorf("cap must keep the first records in order, got %q..%q",
			got.Records[0].String("title"), got.Records[4].String("title"))
	}
}

func TestParse_ListAcceptsLoneString(t *testing.T) {
	text := `[{"title": "Compact", "participants": "alice", "description": "Single participant as string."}]`

	got := Parse(text, topicSchema())
	if len(got.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(got.Records))
	}

	if want := []string{"alice"}; !reflect.DeepEqual(got.Records[0].StringList("participants"), want) {
		t.Errorf("participants = %v, want %v", got.Records[0].StringList("participants"), want)
	}
}

func TestArraySpan(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantSpan     string
		wantBalanced bool
	}{
		{
			name:         "balanced with prose",
			text:         `prefix [1, 2] suffix`,
			wantSpan:     `[1, 2]`,
			wantBalanced: true,
		},
		{
			name:         "nested arrays",
			text:         `[[1], [2]] tail`,
			wantSpan:     `[[1], [2]]`,
			wantBalanced: true,
		},
		{
			name:         "bracket inside string literal ignored",
			text:         `[{"k": "a ] b"}] tail`,
			wantSpan:     `[{"k": "a ] b"}]`,
			wantBalanced: true,
		},
		{
			name:         "escaped quote inside string",
			text:         `[{"k": "say \"]\" loud"}]`,
			wantSpan:     `[{"k": "say \"]\" loud"}]`,
			wantBalanced: true,
		},
		{
			name:         "unterminated array",
			text:         `[{"k": "v"}, {"k2`,
			wantSpan:     `[{"k": "v"}, {"k2`,
			wantBalanced: false,
		},
		{
			name:         "no array",
			text:         `nothing here`,
			wantSpan:     "",
			wantBalanced: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, balanced := arraySpan(tt.text)

			if span != tt.wantSpan {
				t.Errorf("arraySpan() span = %q, want %q", span, tt.wantSpan)
			}

			if balanced != tt.wantBalanced {
				t.Errorf("arraySpan() balanced = %v, want %v", balanced, tt.wantBalanced)
			}
		})
	}
}
