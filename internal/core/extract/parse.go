package extract

import (
	"encoding/json"
	"strings"
)

// Parse runs the completion text through the tier ladder and returns
// the outcome of the first tier that parses. A tier that parses a
// valid array with zero usable records still wins the ladder; lower
// tiers are only consulted when a tier fails outright. Parse never
// returns an error: when every tier fails the outcome carries no
// records and TierFallbackDefault, and the caller substitutes its own
// defaults.
func Parse(text string, schema Schema) Outcome {
	attempts := []struct {
		tier Tier
		fn   func(string, Schema) ([]Record, bool)
	}{
		{TierStrict, strictRecords},
		{TierRepaired, repairedRecords},
		{TierRegex, regexRecords},
	}

	for _, a := range attempts {
		records, ok := a.fn(text, schema)
		if !ok {
			continue
		}

		if schema.MaxRecords > 0 && len(records) > schema.MaxRecords {
			records = records[:schema.MaxRecords]
		}

		return Outcome{Records: records, Tier: a.tier}
	}

	return Outcome{Tier: TierFallbackDefault}
}

// strictRecords accepts only a completion whose entire trimmed text is
// the expected JSON array. Anything around it, even prose before a
// valid array, pushes parsing to the repair tier.
func strictRecords(text string, schema Schema) ([]Record, bool) {
	return decodeRecords(strings.TrimSpace(text), schema)
}

func repairedRecords(text string, schema Schema) ([]Record, bool) {
	var (
		empty  []Record
		parsed bool
	)

	for _, candidate := range repairCandidates(text) {
		records, ok := decodeRecords(candidate, schema)
		if !ok {
			continue
		}

		if len(records) > 0 {
			return records, true
		}

		empty = records
		parsed = true
	}

	return empty, parsed
}

// decodeRecords reports success when the candidate is a valid JSON
// array, even if validation then drops every record.
func decodeRecords(candidate string, schema Schema) ([]Record, bool) {
	var raw []map[string]any
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, false
	}

	return normalizeRecords(raw, schema), true
}

// normalizeRecords validates decoded objects against the schema.
// Records missing a required field, or carrying the wrong type in one,
// are dropped individually rather than failing the batch.
func normalizeRecords(raw []map[string]any, schema Schema) []Record {
	records := make([]Record, 0, len(raw))

	for _, obj := range raw {
		record := Record{}
		valid := true

		for _, f := range schema.Fields {
			value, present := obj[f.Name]
			if !present || value == nil {
				if f.Required {
					valid = false
					break
				}

				continue
			}

			coerced, ok := coerceValue(value, f.Kind)
			if !ok {
				if f.Required {
					valid = false
					break
				}

				continue
			}

			record[f.Name] = coerced
		}

		if !valid {
			continue
		}

		if emptyRequired(record, schema) {
			continue
		}

		records = append(records, record)
	}

	return records
}

func coerceValue(value any, kind FieldKind) (any, bool) {
	switch kind {
	case FieldString:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}

		return strings.TrimSpace(s), true

	case FieldStringList:
		switch v := value.(type) {
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					continue
				}

				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}

				items = append(items, s)
			}

			return items, true
		case string:
			// A lone string where a list was expected still carries
			// usable content.
			if strings.TrimSpace(v) == "" {
				return []string{}, true
			}

			return []string{strings.TrimSpace(v)}, true
		default:
			return nil, false
		}

	case FieldNumber:
		switch v := value.(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		default:
			return nil, false
		}

	default:
		return nil, false
	}
}

// emptyRequired reports whether a required string or list field ended
// up empty after coercion.
func emptyRequired(record Record, schema Schema) bool {
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}

		switch f.Kind {
		case FieldString:
			if record.String(f.Name) == "" {
				return true
			}
		case FieldStringList:
			if len(record.StringList(f.Name)) == 0 {
				return true
			}
		}
	}

	return false
}
