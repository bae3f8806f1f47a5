// Package sanitizer normalizes untrusted form input before it is stored or
// rendered into an email.
//
// Every scalar goes through the same chain: surrounding whitespace is trimmed,
// markup is stripped with a strict bluemonday policy and the remaining text is
// HTML-escaped (quotes included). Composite values decoded from JSON are walked
// recursively:
//
//	clean := sanitizer.Value(map[string]any{
//		"fullName": "  <b>Ada</b> ",
//		"tags":     []any{"<i>chef</i>", 42},
//	})
//	// map[string]any{"fullName": "Ada", "tags": []any{"chef", "42"}}
//
// The chain is idempotent: running Value or Clean on already sanitized output
// returns it unchanged, so values may safely pass through the package more than
// once (for example when a record is re-rendered into a notification).
//
// Apply and Compose build ad-hoc pipelines from the individual helpers:
//
//	slug := sanitizer.Compose(sanitizer.Trim, strings.ToLower)
//
// None of the helpers returns an error and all of them are safe for concurrent
// use.
package sanitizer
