package extract

import (
	"regexp"
	"strings"
)

var (
	fenceRe        = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	adjacentObjRe  = regexp.MustCompile(`\}\s*\{`)
	bareKeyRe      = regexp.MustCompile(`([\[{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingComma = regexp.MustCompile(`,\s*([\]}])`)

	// textCleanup normalizes typographic quotes and collapses raw
	// newlines and tabs to spaces. A literal newline inside a string
	// value is invalid JSON, so the collapse has to happen before the
	// re-parse.
	textCleanup = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", `'`,
		"’", `'`,
		"\n", " ",
		"\r", " ",
		"\t", " ",
	)
)

// repairCandidates applies a fixed sequence of mechanical repairs to a
// completion and returns the JSON array candidates it can produce, in
// preference order: the first top-level array span, then a single
// object wrapped into an array. Some completions emit an object whose
// inner list fields shadow the array scan, so both are offered.
func repairCandidates(text string) []string {
	// A fenced block, when present, is the whole payload.
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	text = textCleanup.Replace(text)

	var candidates []string

	if span, balanced := arraySpan(text); span != "" {
		if !balanced {
			span = truncateToLastObject(span)
		}

		candidates = append(candidates, applyRepairs(span))
	}

	if obj, balanced := objectSpan(text); obj != "" && balanced {
		candidates = append(candidates, applyRepairs("["+obj+"]"))
	}

	return candidates
}

func applyRepairs(span string) string {
	span = adjacentObjRe.ReplaceAllString(span, "}, {")
	span = bareKeyRe.ReplaceAllString(span, `$1"$2":`)
	span = trailingComma.ReplaceAllString(span, "$1")

	return span
}

// truncateToLastObject cuts an unterminated array back to its last
// complete object and closes it. A span with no complete object
// degrades to an empty array.
func truncateToLastObject(span string) string {
	last := strings.LastIndexByte(span, '}')
	if last < 0 {
		return "[]"
	}

	return span[:last+1] + "]"
}
