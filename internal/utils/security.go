package utils

import (
	"html"
	"regexp"
	"strings"
)

// xssPatterns flags markup that should never appear in normalized
// transcript text or chat answers rendered back to a browser.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)<iframe[^>]*>.*?</iframe>`),
	regexp.MustCompile(`(?i)<object[^>]*>.*?</object>`),
	regexp.MustCompile(`(?i)<embed[^>]*>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

// SanitizeHTML escapes a string if it contains markup matching a
// known XSS pattern, otherwise returns it unchanged.
func SanitizeHTML(input string) string {
	if input == "" {
		return ""
	}
	for _, pattern := range xssPatterns {
		if pattern.MatchString(input) {
			return html.EscapeString(input)
		}
	}
	return input
}

// SanitizeForLog strips newlines and control characters from a value
// before it's interpolated into a structured log field, preventing
// log injection from upstream or user-supplied text.
func SanitizeForLog(input string) string {
	if input == "" {
		return ""
	}
	sanitized := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(input)
	var b strings.Builder
	for _, r := range sanitized {
		if r >= 32 || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
