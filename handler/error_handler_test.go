package handler_test

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/pkg/binder"
	"github.com/dmitrymomot/formintake/pkg/logger"
)

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLevel  string
	}{
		{
			name:       "invalid body",
			err:        fmt.Errorf("%w: unexpected EOF", binder.ErrInvalidBody),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid request body."}`,
			wantLevel:  "INFO",
		},
		{
			name:       "http error",
			err:        fmt.Errorf("route: %w", handler.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Page not found."}`,
			wantLevel:  "INFO",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal server error."}`,
			wantLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON))
			eh := handler.NewErrorHandler(log)

			w := httptest.NewRecorder()
			eh(handler.NewContext(w, httptest.NewRequest(http.MethodPost, "/contact", nil)), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, buf.String(), `"component":"error_handler"`)
		})
	}
}

func TestNewErrorHandler_UsesHTTPErrorKey(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard())
	w := httptest.NewRecorder()
	eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrTooManyRequests)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Please wait a bit before submitting again."}`, w.Body.String())
}
