package handler

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the {"message": ...} envelope.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorsBody is the {"errors": {...}} envelope for per-field failures.
type ErrorsBody struct {
	Errors map[string]string `json:"errors"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, v := range j.headers {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithHeader adds a response header.
func WithHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON encodes v with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   v,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Message responds with {"message": msg}.
func Message(status int, msg string, opts ...JSONOption) Response {
	return JSON(MessageBody{Message: msg}, append([]JSONOption{WithJSONStatus(status)}, opts...)...)
}

// Errors responds with {"errors": fields} and status 400.
func Errors(fields map[string]string, opts ...JSONOption) Response {
	if fields == nil {
		fields = map[string]string{}
	}
	return JSON(ErrorsBody{Errors: fields}, append([]JSONOption{WithJSONStatus(http.StatusBadRequest)}, opts...)...)
}

// WriteMessage renders a message response outside of Wrap, e.g. from plain
// http.Handler middleware.
func WriteMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	_ = Message(status, msg).Render(w, r)
}
