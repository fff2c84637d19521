package processors

import (
	"regexp"
	"strings"
)

var (
	// quoting characters that would break a prompt segment or a later JSON re-parse
	unsafePromptChars = regexp.MustCompile("[`*\"“”‘’]")
	whitespaceRun     = regexp.MustCompile(`[\s\v\p{Z}\x{0085}]+`)
)

// SanitizeText normalizes user-supplied text for embedding into a single-line prompt
// segment. Non-string input yields "". A non-nil *string is dereferenced.
func SanitizeText(value any) string {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case *string:
		if v == nil {
			return ""
		}
		raw = *v
	default:
		return ""
	}

	cleaned := unsafePromptChars.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, `\`, `\\`)
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}
