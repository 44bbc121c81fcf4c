// internal/app/system/richtext/sanitize.go
package richtext

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is built once; bluemonday policies are safe for concurrent use.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("u", "s", "sub", "sup", "mark", "hr", "br")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td", "pre", "code", "span", "p")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("th", "td")
	p.AllowStyles("text-align", "width").OnElements("table", "th", "td")

	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips anything unsafe from user HTML: scripts, event handlers,
// javascript: URLs, iframes, forms.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

var blockTagRE = regexp.MustCompile(`(?i)<(p|div|br|ul|ol|li|h[1-6]|table|blockquote|pre|strong|em|a|span|img|hr)\b`)

// IsHTML reports whether s already carries markup rather than markdown.
func IsHTML(s string) bool {
	return blockTagRE.MatchString(s)
}

// Render prepares stored rich text for display. HTML is sanitized as is;
// anything else is treated as markdown. Content with nothing visible renders
// as "" so callers can show their empty state.
func Render(s string) template.HTML {
	if !HasVisibleContent(s) {
		return ""
	}
	if IsHTML(s) {
		return SanitizeToHTML(s)
	}
	return Markdown(strings.TrimSpace(s))
}
