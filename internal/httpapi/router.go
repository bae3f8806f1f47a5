package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/pkg/binder"
	"github.com/dmitrymomot/formintake/pkg/clientip"
	"github.com/dmitrymomot/formintake/pkg/httpserver"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/ratelimiter"
	"github.com/dmitrymomot/formintake/pkg/requestid"
)

// Options configures the router. Pipeline and Session are required; the rest
// is mounted only when set.
type Options struct {
	Pipeline Submitter
	// Session puts a session into the request context for the cooldown state.
	Session func(http.Handler) http.Handler
	// Cooldown, when set, is checked before the body is read so a client
	// inside the cooldown gets 429 whatever it sent.
	Cooldown Gate

	// RateLimit throttles form posts per client IP.
	RateLimit *ratelimiter.Bucket

	// Uploads serves locally stored files under UploadsPrefix.
	Uploads       http.FileSystem
	UploadsPrefix string

	// Checks back GET /health/ready.
	Checks []httpserver.Check

	// MaxBodySize bounds urlencoded and JSON bodies, MaxMultipartSize
	// multipart ones. Zero keeps the binder defaults.
	MaxBodySize      int64
	MaxMultipartSize int64
	Logger           *slog.Logger
}

// NewRouter builds the HTTP surface: the two form endpoints at the root and
// under /api/forms, health checks and the upload file server. Every other
// path or method answers 404 with a JSON message.
func NewRouter(opts Options) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("httpapi"))

	var binderOpts []binder.Option
	if opts.MaxBodySize > 0 {
		binderOpts = append(binderOpts, binder.WithMaxBodySize(opts.MaxBodySize))
	}
	if opts.MaxMultipartSize > 0 {
		binderOpts = append(binderOpts, binder.WithMaxMultipartSize(opts.MaxMultipartSize))
	}
	forms := &formHandler{
		pipeline: opts.Pipeline,
		bind:     binder.Body(binderOpts...),
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		accessLog(log),
	)
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, opts.Checks...))

	if opts.Uploads != nil {
		prefix := "/" + strings.Trim(opts.UploadsPrefix, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, imagesOnly(http.FileServer(opts.Uploads))))
	}

	routes := func(r chi.Router) {
		r.Post("/contact", forms.handle(submission.ContactForm))
		r.Post("/application", forms.handle(submission.ApplicationForm))
	}

	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(ratelimiter.Middleware(opts.RateLimit, ratelimiter.ByClientIP,
				ratelimiter.WithLimitedHandler(http.HandlerFunc(rateLimited)),
				ratelimiter.WithErrorHandler(internalError(log, "ratelimiter")),
			))
		}
		if opts.Session != nil {
			r.Use(opts.Session)
		}
		if opts.Cooldown != nil {
			r.Use(cooldownGate(opts.Cooldown, log))
		}
		routes(r)
		r.Route("/api/forms", routes)
	})

	return r
}

// SessionErrorHandler renders session failures as the JSON envelope used by
// every other response.
func SessionErrorHandler(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	if log == nil {
		log = logger.Discard()
	}
	return internalError(log, "session")
}
