// Package binder decodes HTTP request bodies into a schema-less Payload.
//
// Form submissions arrive either as application/x-www-form-urlencoded,
// multipart/form-data or as a raw JSON object. Body accepts all three: form
// encodings are preferred, and the raw body is decoded as JSON only when no
// form fields could be parsed from it.
//
// # Usage
//
//	h := handler.Wrap(submit, handler.WithBinder[handler.Context, binder.Payload](binder.Body()))
//
//	func submit(ctx handler.Context, p binder.Payload) handler.Response {
//		name, _ := p.Fields["fullName"].(string)
//		passport := p.Files["passport_image"] // nil when absent
//		...
//	}
//
// Field values are strings for form encodings; a repeated key keeps its last
// value and a key with a trailing "[]" becomes []any. JSON bodies keep their
// decoded shape, so nested objects and arrays are preserved as map[string]any
// and []any.
//
// # Errors
//
// Every decoding failure wraps ErrInvalidBody, so callers can answer all of
// them with a single 400 response. Oversized bodies additionally wrap
// ErrBodyTooLarge; multipart bodies are bounded by WithMaxMultipartSize.
package binder
