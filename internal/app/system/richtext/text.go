// internal/app/system/richtext/text.go
package richtext

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagRE        = regexp.MustCompile(`<[^>]*>`)
	nbspRE       = regexp.MustCompile(`(?i)&nbsp;`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// StripHTML replaces every tag and &nbsp; with a space and trims the result.
// Inner whitespace is left as is.
func StripHTML(s string) string {
	s = tagRE.ReplaceAllString(s, " ")
	s = nbspRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// HasVisibleContent reports whether s has any text once tags are removed.
// "<p>&nbsp;</p>" and "<p></p>" are empty.
func HasVisibleContent(s string) bool {
	return StripHTML(s) != ""
}

// DecodeEntities turns HTML entities into their characters.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// CollapseWhitespace folds runs of whitespace into single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// Preview collapses whitespace and cuts s to at most limit runes, appending
// "..." when something was removed.
func Preview(s string, limit int) string {
	s = CollapseWhitespace(s)
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
