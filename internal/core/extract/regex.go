package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	stringValuePattern = `"((?:[^"\\]|\\.)*)"`
	listValuePattern   = `\[([^\]]*)\]`
	numberValuePattern = `(-?\d+)`
)

// regexRecords is the last extraction tier before giving up. It builds
// patterns from the schema itself: first a strict one reproducing the
// full field order, then a lenient one that matches required fields
// with anything in between. A pattern with no valid matches is a tier
// failure, unlike the structured tiers.
func regexRecords(text string, schema Schema) ([]Record, bool) {
	patterns := []struct {
		re     *regexp.Regexp
		fields []Field
	}{
		{strictPattern(schema), schema.Fields},
		{lenientPattern(schema), schema.RequiredFields()},
	}

	for _, p := range patterns {
		if p.re == nil {
			continue
		}

		records := matchRecords(text, p.re, p.fields)

		valid := records[:0]
		for _, r := range records {
			if emptyRequired(r, schema) {
				continue
			}

			valid = append(valid, r)
		}

		if len(valid) > 0 {
			return valid, true
		}
	}

	return nil, false
}

func valuePattern(kind FieldKind) string {
	switch kind {
	case FieldStringList:
		return listValuePattern
	case FieldNumber:
		return numberValuePattern
	default:
		return stringValuePattern
	}
}

// strictPattern matches an object carrying every schema field in
// declaration order.
func strictPattern(schema Schema) *regexp.Regexp {
	parts := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		parts = append(parts, fmt.Sprintf(`"%s"\s*:\s*%s`, regexp.QuoteMeta(f.Name), valuePattern(f.Kind)))
	}

	return regexp.MustCompile(`\{\s*` + strings.Join(parts, `\s*,\s*`) + `\s*\}`)
}

// lenientPattern matches only the required fields, in order, with
// arbitrary non-object content between them.
func lenientPattern(schema Schema) *regexp.Regexp {
	required := schema.RequiredFields()
	if len(required) == 0 {
		return nil
	}

	parts := make([]string, 0, len(required))
	for _, f := range required {
		parts = append(parts, fmt.Sprintf(`"%s"\s*:\s*%s`, regexp.QuoteMeta(f.Name), valuePattern(f.Kind)))
	}

	return regexp.MustCompile(`\{[^}]*?` + strings.Join(parts, `[^}]*?`) + `[^}]*?\}`)
}

func matchRecords(text string, re *regexp.Regexp, fields []Field) []Record {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	records := make([]Record, 0, len(matches))

	for _, m := range matches {
		if len(m) != len(fields)+1 {
			continue
		}

		record := Record{}

		for i, f := range fields {
			raw := m[i+1]

			switch f.Kind {
			case FieldStringList:
				record[f.Name] = parseListItems(raw)
			case FieldNumber:
				n, err := strconv.Atoi(raw)
				if err != nil {
					continue
				}

				record[f.Name] = n
			default:
				record[f.Name] = unescape(raw)
			}
		}

		records = append(records, record)
	}

	return records
}

// parseListItems splits the inside of a matched JSON array of strings.
func parseListItems(raw string) []string {
	var items []string

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `"'`)

		if part == "" {
			continue
		}

		items = append(items, unescape(part))
	}

	return items
}

var escapeRepl = strings.NewReplacer(
	`\"`, `"`,
	`\n`, " ",
	`\t`, " ",
	`\\`, `\`,
)

func unescape(s string) string {
	return escapeRepl.Replace(s)
}
