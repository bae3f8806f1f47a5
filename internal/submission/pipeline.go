package submission

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/dmitrymomot/formintake/pkg/logger"
)

// Cooldown enforces the minimum interval between successful submissions.
type Cooldown interface {
	Check(ctx context.Context) error
	Record(ctx context.Context) error
}

// Uploads validates and stores attached files.
type Uploads interface {
	// Check validates an upload without side effects.
	Check(field string, fh *multipart.FileHeader) error
	Place(ctx context.Context, field string, fh *multipart.FileHeader, origin string) (Asset, error)
	Remove(ctx context.Context, asset Asset) error
}

// Store persists a submission atomically.
type Store interface {
	Insert(ctx context.Context, desc Descriptor, values []any) (Record, error)
}

// Notifier sends the administrator and submitter emails, in that order.
type Notifier interface {
	SendBoth(ctx context.Context, sub Submission) error
}

type Pipeline struct {
	cooldown Cooldown
	uploads  Uploads
	store    Store
	notifier Notifier
	log      *slog.Logger
}

type Option func(*Pipeline)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

func New(cooldown Cooldown, uploads Uploads, store Store, notifier Notifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		cooldown: cooldown,
		uploads:  uploads,
		store:    store,
		notifier: notifier,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs req through every stage. The first failing stage stops the run
// and its *Error is returned. Once the record is stored the run no longer
// follows ctx cancellation, so notification and cooldown bookkeeping finish
// even if the client goes away.
func (p *Pipeline) Submit(ctx context.Context, req Request) (Record, error) {
	desc := req.Form
	log := p.log.With(logger.Form(string(desc.Type)))

	fields := Sanitize(req.Fields)

	if err := p.cooldown.Check(ctx); err != nil {
		return Record{}, err
	}

	if err := CheckHoneypot(fields[HoneypotField]); err != nil {
		return Record{}, err
	}
	fields = fields.Without(HoneypotField)

	for _, field := range desc.Uploads {
		if fh := req.Files[field]; fh != nil {
			if err := p.uploads.Check(field, fh); err != nil {
				return Record{}, err
			}
		}
	}

	if errs := ValidateFields(desc, fields); !errs.IsEmpty() {
		return Record{}, ValidationFailed(errs.Map())
	}

	assets, err := p.place(ctx, desc, req)
	if err != nil {
		return Record{}, err
	}

	record, err := p.store.Insert(ctx, desc, desc.Values(fields, assets))
	if err != nil {
		p.discard(context.WithoutCancel(ctx), log, assets)
		return Record{}, asKind(err, SaveFailed)
	}

	ctx = context.WithoutCancel(ctx)
	log.InfoContext(ctx, "submission stored", logger.Event("submission.stored"), slog.Int64("id", record.ID))

	sub := Submission{Form: desc, Fields: fields, Assets: assets, Record: record}
	if err := p.notifier.SendBoth(ctx, sub); err != nil {
		return record, asKind(err, NotificationFailed)
	}

	// the submission went through; a lost cooldown mark only loosens the limit
	if err := p.cooldown.Record(ctx); err != nil {
		log.ErrorContext(ctx, "failed to record submission time",
			logger.Event("cooldown.record"),
			logger.Error(err),
		)
	}

	return record, nil
}

// place stores every upload sent for desc. A failure removes the files
// already placed by this run.
func (p *Pipeline) place(ctx context.Context, desc Descriptor, req Request) (map[string]Asset, error) {
	assets := make(map[string]Asset, len(desc.Uploads))
	for _, field := range desc.Uploads {
		fh := req.Files[field]
		if fh == nil {
			continue
		}
		asset, err := p.uploads.Place(ctx, field, fh, req.Origin)
		if err != nil {
			p.discard(context.WithoutCancel(ctx), p.log, assets)
			return nil, asKind(err, func(err error) *Error { return StorageWrite(field, err) })
		}
		assets[field] = asset
	}
	return assets, nil
}

func (p *Pipeline) discard(ctx context.Context, log *slog.Logger, assets map[string]Asset) {
	for _, asset := range assets {
		if err := p.uploads.Remove(ctx, asset); err != nil {
			log.WarnContext(ctx, "failed to remove orphaned upload",
				logger.Field(asset.Field),
				slog.String("path", asset.Path),
				logger.Error(err),
			)
		}
	}
}

// asKind keeps pipeline errors as they are and wraps anything else with wrap.
func asKind(err error, wrap func(error) *Error) error {
	var subErr *Error
	if errors.As(err, &subErr) {
		return err
	}
	return wrap(err)
}
