package submission

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error kinds. Match them with errors.Is.
var (
	ErrRateLimited      = errors.New("submission.rate_limited")
	ErrSpamDetected     = errors.New("submission.spam_detected")
	ErrInvalidFileType  = errors.New("submission.invalid_file_type")
	ErrFileTooLarge     = errors.New("submission.file_too_large")
	ErrStorageWrite     = errors.New("submission.storage_write")
	ErrValidationFailed = errors.New("submission.validation_failed")
	ErrPersistence      = errors.New("submission.persistence")
	ErrNotification     = errors.New("submission.notification")
)

const (
	MsgRateLimited    = "Please wait a bit before submitting again."
	MsgSpamDetected   = "Spam detected."
	MsgPrepareFailed  = "Database error: unable to prepare statement."
	MsgSaveFailed     = "Error saving your message. Please try again later."
	MsgMailerFailed   = "Mailer Error: could not send confirmation email."
	MsgSuccess        = "Your message has been sent successfully."
	MsgFieldsRejected = "One or more fields are invalid."
)

// Error is a failed pipeline stage. Message is safe to show to the client;
// Err carries the underlying cause for logs only.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsClientError reports whether the failure was caused by the submitted input
// rather than by infrastructure.
func (e *Error) IsClientError() bool {
	switch e.Kind {
	case ErrStorageWrite, ErrPersistence, ErrNotification:
		return false
	}
	return true
}

func RateLimited() *Error {
	return &Error{Kind: ErrRateLimited, Message: MsgRateLimited}
}

func SpamDetected() *Error {
	return &Error{Kind: ErrSpamDetected, Message: MsgSpamDetected}
}

func InvalidFileType(field string) *Error {
	return &Error{Kind: ErrInvalidFileType, Message: FieldLabel(field) + " must be a JPG or PNG image."}
}

func FileTooLarge(field string) *Error {
	return &Error{Kind: ErrFileTooLarge, Message: FieldLabel(field) + " must not exceed 5MB."}
}

func StorageWrite(field string, err error) *Error {
	return &Error{Kind: ErrStorageWrite, Message: "Failed to upload " + fieldWords(field), Err: err}
}

func ValidationFailed(fields map[string]string) *Error {
	return &Error{Kind: ErrValidationFailed, Message: MsgFieldsRejected, Fields: fields}
}

func PrepareFailed(err error) *Error {
	return &Error{Kind: ErrPersistence, Message: MsgPrepareFailed, Err: err}
}

func SaveFailed(err error) *Error {
	return &Error{Kind: ErrPersistence, Message: MsgSaveFailed, Err: err}
}

func NotificationFailed(err error) *Error {
	return &Error{Kind: ErrNotification, Message: MsgMailerFailed, Err: err}
}

// FieldLabel turns "passport_image" into "Passport image".
func FieldLabel(field string) string {
	words := fieldWords(field)
	r, size := utf8.DecodeRuneInString(words)
	if r == utf8.RuneError {
		return words
	}
	return string(unicode.ToUpper(r)) + words[size:]
}

func fieldWords(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
