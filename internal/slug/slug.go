package slug

import (
	"regexp"
	"strings"
)

const maxLength = 250

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[\s_-]+`)
)

// Make converts a title into a URL-safe slug: lowercase, special characters
// stripped, runs of whitespace/underscores collapsed to single hyphens.
//
//	"Hello World! 123" -> "hello-world-123"
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLength {
		s = s[:maxLength]
		if i := strings.LastIndex(s, "-"); i > 0 {
			s = s[:i]
		}
	}
	return s
}

// Valid reports whether s is a well-formed slug as produced by Make.
func Valid(s string) bool {
	return s != "" && len(s) <= maxLength && s == Make(s)
}
