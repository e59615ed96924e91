package analysis

import "github.com/chatinsight/chat-insight-bot/internal/core/extract"

// Record field names shared by the prompt templates and the schemas.
// Field order matches the example shape shown to the model.
const (
	fieldTitle        = "title"
	fieldParticipants = "participants"
	fieldDescription  = "description"
	fieldMessageCount = "message_count"

	fieldDisplayName    = "display_name"
	fieldSubjectID      = "subject_id"
	fieldPersonalityTag = "personality_tag"
	fieldRationale      = "rationale"

	fieldContent    = "content"
	fieldSenderName = "sender_display_name"
	fieldTimestamp  = "timestamp"
)

func topicSchema(maxRecords int) extract.Schema {
	return extract.Schema{
		Name: "topic",
		Fields: []extract.Field{
			{Name: fieldTitle, Kind: extract.FieldString, Required: true},
			{Name: fieldParticipants, Kind: extract.FieldStringList, Required: true},
			{Name: fieldDescription, Kind: extract.FieldString, Required: true},
			{Name: fieldMessageCount, Kind: extract.FieldNumber},
		},
		MaxRecords: maxRecords,
	}
}

func userTitleSchema(maxRecords int) extract.Schema {
	return extract.Schema{
		Name: "user_title",
		Fields: []extract.Field{
			{Name: fieldDisplayName, Kind: extract.FieldString, Required: true},
			{Name: fieldSubjectID, Kind: extract.FieldString},
			{Name: fieldTitle, Kind: extract.FieldString, Required: true},
			{Name: fieldPersonalityTag, Kind: extract.FieldString},
			{Name: fieldRationale, Kind: extract.FieldString},
		},
		MaxRecords: maxRecords,
	}
}

func quoteSchema(maxRecords int) extract.Schema {
	return extract.Schema{
		Name: "quote",
		Fields: []extract.Field{
			{Name: fieldContent, Kind: extract.FieldString, Required: true},
			{Name: fieldSenderName, Kind: extract.FieldString, Required: true},
			{Name: fieldRationale, Kind: extract.FieldString},
			{Name: fieldTimestamp, Kind: extract.FieldNumber},
		},
		MaxRecords: maxRecords,
	}
}
