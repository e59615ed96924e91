// Package extract recovers structured records from LLM completion text.
// Parsing runs through a fixed ladder of tiers, from a strict JSON
// decode down to schema-derived regular expressions, and always
// produces an outcome instead of an error.
package extract

import "strconv"

// FieldKind describes the value type a schema field accepts.
type FieldKind string

const (
	FieldString     FieldKind = "string"
	FieldStringList FieldKind = "string_list"
	FieldNumber     FieldKind = "number"
)

// Field is one named slot in the expected record shape.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Schema describes the array-of-objects shape a completion is expected
// to carry. Field order matters: the regex tier reproduces it.
type Schema struct {
	Name       string
	Fields     []Field
	MaxRecords int
}

// RequiredFields returns the required subset in declaration order.
func (s Schema) RequiredFields() []Field {
	var required []Field
	for _, f := range s.Fields {
		if f.Required {
			required = append(required, f)
		}
	}

	return required
}

// Record is one extracted object. Values hold the types the schema
// declares: string, []string, or int.
type Record map[string]any

// String returns the named string field, or empty when absent.
func (r Record) String(name string) string {
	v, ok := r[name].(string)
	if !ok {
		return ""
	}

	return v
}

// StringList returns the named list field, or nil when absent.
func (r Record) StringList(name string) []string {
	v, ok := r[name].([]string)
	if !ok {
		return nil
	}

	return v
}

// Int returns the named number field, or zero when absent.
func (r Record) Int(name string) int {
	switch v := r[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

// Tier names the parse attempt that produced an outcome.
type Tier string

const (
	TierStrict          Tier = "strict"
	TierRepaired        Tier = "repaired"
	TierRegex           Tier = "regex"
	TierFallbackDefault Tier = "fallback_default"
)

// Outcome is the result of parsing one completion. Records is empty
// and Tier is TierFallbackDefault when every tier failed; callers
// substitute their own defaults.
type Outcome struct {
	Records []Record
	Tier    Tier
}
