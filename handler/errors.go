package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with a status code and a client-facing message.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // message sent to the client
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest      = HTTPError{Code: http.StatusBadRequest, Key: "Invalid request body."}
	ErrNotFound        = HTTPError{Code: http.StatusNotFound, Key: "Page not found."}
	ErrTooManyRequests = HTTPError{Code: http.StatusTooManyRequests, Key: "Please wait a bit before submitting again."}
	ErrInternal        = HTTPError{Code: http.StatusInternalServerError, Key: "Internal server error."}
)
