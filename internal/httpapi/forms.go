package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/internal/upload"
	"github.com/dmitrymomot/formintake/pkg/binder"
)

// Submitter runs one form submission.
type Submitter interface {
	Submit(ctx context.Context, req submission.Request) (submission.Record, error)
}

type formHandler struct {
	pipeline Submitter
	bind     handler.Bind
	log      *slog.Logger
}

func (h *formHandler) handle(desc submission.Descriptor) http.HandlerFunc {
	return handler.Wrap(h.submit(desc),
		handler.WithBinder[handler.Context, binder.Payload](h.bind),
		handler.WithErrorHandler[handler.Context, binder.Payload](handler.NewErrorHandler(h.log)),
		handler.WithDecorators[handler.Context, binder.Payload](removeTempFiles),
	)
}

// removeTempFiles drops the spooled multipart files once the handler is done.
func removeTempFiles(next handler.HandlerFunc[handler.Context, binder.Payload]) handler.HandlerFunc[handler.Context, binder.Payload] {
	return func(ctx handler.Context, req binder.Payload) handler.Response {
		if form := ctx.Request().MultipartForm; form != nil {
			defer func() { _ = form.RemoveAll() }()
		}
		return next(ctx, req)
	}
}

func (h *formHandler) submit(desc submission.Descriptor) handler.HandlerFunc[handler.Context, binder.Payload] {
	return func(ctx handler.Context, req binder.Payload) handler.Response {
		rec, err := h.pipeline.Submit(ctx, submission.Request{
			Form:   desc,
			Fields: req.Fields,
			Files:  req.Files,
			Origin: upload.Origin(ctx.Request()),
		})
		if err != nil {
			return failure(h.log, ctx, desc.Type, err)
		}

		h.log.InfoContext(ctx, "submission accepted",
			slog.String("form", string(desc.Type)),
			slog.Int64("id", rec.ID),
		)
		return handler.Message(http.StatusOK, submission.MsgSuccess)
	}
}
