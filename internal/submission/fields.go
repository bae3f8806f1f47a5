package submission

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/formintake/pkg/sanitizer"
	"github.com/dmitrymomot/formintake/pkg/validator"
)

const (
	MsgFullNameRequired = "Full Name is required."
	MsgEmailRequired    = "Valid Email is required."
	MsgEmailMalformed   = "Please provide a valid email address."
	MsgPhoneRequired    = "Phone number is required."
	MsgMessageRequired  = "Message is required."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sanitized holds request fields after sanitizer.Value.
type Sanitized map[string]any

// Sanitize cleans every value of raw. The input is not modified.
func Sanitize(raw map[string]any) Sanitized {
	return Sanitized(sanitizer.Map(raw))
}

// String returns the field as a string. Missing and non-string values
// (nested objects or lists) read as "".
func (s Sanitized) String(field string) string {
	v, _ := s[field].(string)
	return v
}

// Present reports whether field holds a non-blank string or a non-empty
// list or object.
func (s Sanitized) Present(field string) bool {
	return present(s[field])
}

func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case []any:
		for _, item := range val {
			if present(item) {
				return true
			}
		}
		return false
	case map[string]any:
		for _, item := range val {
			if present(item) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Without returns a copy of s lacking the given fields.
func (s Sanitized) Without(fields ...string) Sanitized {
	out := make(Sanitized, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// ValidateFields checks the fields every form requires. An empty result
// means the submission may be persisted.
func ValidateFields(desc Descriptor, fields Sanitized) validator.ValidationErrors {
	fullName := fields.String("fullName")
	email := fields.String("email")
	phone := fields.String("phone")
	message := fields.String("message")

	// the pattern rule comes after ValidEmail so its message wins in Map
	err := validator.Apply(
		validator.RequiredString("fullName", fullName).WithMessage(MsgFullNameRequired),
		validator.ValidEmail("email", email).WithMessage(MsgEmailRequired),
		validator.MatchesPattern("email", email, emailPattern, "email").
			WithMessage(MsgEmailMalformed).
			When(email != ""),
		validator.RequiredString("phone", phone).WithMessage(MsgPhoneRequired),
		validator.RequiredString("message", message).
			WithMessage(MsgMessageRequired).
			When(desc.RequireMessage),
	)

	return validator.ExtractValidationErrors(err)
}
