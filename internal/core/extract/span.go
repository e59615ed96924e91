package extract

import "strings"

// arraySpan finds the first top-level JSON array in text and returns
// its span. The scan is string-aware: brackets inside string literals
// and escaped quotes do not affect nesting depth. When the array is
// never closed the span runs to the end of text and balanced is false.
func arraySpan(text string) (span string, balanced bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return text[start:], false
}

// objectSpan is the object-literal counterpart of arraySpan, used when
// a completion carries a single record instead of an array.
func objectSpan(text string) (span string, balanced bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return text[start:], false
}
