package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Check is a named readiness check, e.g. a database ping.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthCheckHandler answers 200 {"status":"ok"} when every check passes,
// otherwise 503 with the failing check's name. With no checks it is a
// liveness check.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					slog.String("check", c.Name), slog.Any("error", err))
				writeStatus(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"check":  c.Name,
				})
				return
			}
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
