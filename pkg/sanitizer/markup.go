package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every element and attribute, keeping only text.
// bluemonday policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// StripTags removes all markup from s and returns plain, unescaped text.
// Entities present in the input are decoded once, line endings are
// normalized to \n and the contents of script and style elements are
// dropped entirely.
func StripTags(s string) string {
	if s == "" {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// EscapeHTML escapes <, >, &, ' and " for output in an HTML document.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// Clean is the scalar sanitization chain used for every form value.
// Whitespace is trimmed again after stripping so that text surrounded by
// removed tags does not keep dangling spaces.
var Clean = Compose(
	Trim,
	StripTags,
	Trim,
	EscapeHTML,
)
