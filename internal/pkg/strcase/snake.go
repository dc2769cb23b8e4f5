package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a camel or Pascal case identifier to snake_case.
// Acronyms stay whole: "HTTPServer" becomes "http_server" and "userID"
// becomes "user_id".
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			// Word boundary after a lowercase letter or digit, or between
			// an acronym and the word that follows it.
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
