package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/pkg/logger"
)

// statusOf maps a pipeline failure to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, submission.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, submission.ErrSpamDetected):
		return http.StatusForbidden
	case errors.Is(err, submission.ErrInvalidFileType),
		errors.Is(err, submission.ErrFileTooLarge),
		errors.Is(err, submission.ErrValidationFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// failure renders err and logs it. Anything that is not a *submission.Error
// is reported as a generic internal error.
//
// Server-side *submission.Error values were already logged at error level by
// the store, upload or notify component that produced them, so they are only
// traced here. Errors no component owns are logged at error level once.
func failure(log *slog.Logger, ctx handler.Context, form submission.FormType, err error) handler.Response {
	status := statusOf(err)

	var subErr *submission.Error
	known := errors.As(err, &subErr)

	level := slog.LevelError
	switch {
	case status < http.StatusInternalServerError:
		level = slog.LevelInfo
	case known:
		level = slog.LevelDebug
	}
	log.LogAttrs(ctx, level, "submission rejected",
		logger.Form(string(form)),
		logger.Status(status),
		logger.Error(err),
	)

	if !known {
		return handler.Message(handler.ErrInternal.Code, handler.ErrInternal.Key)
	}
	if errors.Is(err, submission.ErrValidationFailed) {
		return handler.Errors(subErr.Fields)
	}
	return handler.Message(status, subErr.Message)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handler.WriteMessage(w, r, handler.ErrNotFound.Code, handler.ErrNotFound.Key)
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	handler.WriteMessage(w, r, handler.ErrTooManyRequests.Code, handler.ErrTooManyRequests.Key)
}

func internalError(log *slog.Logger, component string) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "middleware failure",
			logger.Component(component),
			logger.Error(err),
		)
		handler.WriteMessage(w, r, handler.ErrInternal.Code, handler.ErrInternal.Key)
	}
}
