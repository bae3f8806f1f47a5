package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/internal/upload"
	"github.com/dmitrymomot/formintake/pkg/logger"
)

// accessLog writes one line per request after it completes.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.Status(status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

// imagesOnly serves nothing but stored images, with a fixed content type
// and no sniffing. Directory indexes and any other name are 404.
func imagesOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := upload.ContentType(r.URL.Path)
		if ct == "" || strings.HasSuffix(r.URL.Path, "/") {
			notFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Content-Type", ct)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Content-Disposition", "inline")
		next.ServeHTTP(w, r)
	})
}

// Gate reports whether the caller may submit right now.
type Gate interface {
	Check(ctx context.Context) error
}

// cooldownGate answers 429 before the body is parsed while the session's
// cooldown runs. The pipeline checks again, so a nil error here only lets the
// request through.
func cooldownGate(gate Gate, log *slog.Logger) func(http.Handler) http.Handler {
	fail := internalError(log, "cooldown")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := gate.Check(r.Context()); err != nil {
				if errors.Is(err, submission.ErrRateLimited) {
					handler.WriteMessage(w, r, http.StatusTooManyRequests, submission.MsgRateLimited)
					return
				}
				fail(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
