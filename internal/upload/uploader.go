package upload

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/pkg/file"
	"github.com/dmitrymomot/formintake/pkg/logger"
)

// MaxFileSize is the largest accepted image, 5MB.
const MaxFileSize int64 = 5 << 20

// AllowedTypes are the declared content types accepted for images.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/jpg"}

// Uploader validates images and writes them to a file.Storage.
type Uploader struct {
	storage  file.Storage
	maxSize  int64
	basePath string
	log      *slog.Logger
}

type Option func(*Uploader)

func WithMaxSize(n int64) Option {
	return func(u *Uploader) {
		if n > 0 {
			u.maxSize = n
		}
	}
}

// WithBasePath sets the path prefix used for path-only storage URLs.
func WithBasePath(p string) Option {
	return func(u *Uploader) {
		u.basePath = strings.TrimRight(p, "/")
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(u *Uploader) {
		if l != nil {
			u.log = l
		}
	}
}

func New(storage file.Storage, opts ...Option) *Uploader {
	u := &Uploader{
		storage: storage,
		maxSize: MaxFileSize,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Check validates the declared type first, then the size.
func (u *Uploader) Check(field string, fh *multipart.FileHeader) error {
	if err := file.ValidateDeclaredType(fh, AllowedTypes...); err != nil {
		return submission.InvalidFileType(field)
	}
	if err := file.ValidateSize(fh, u.maxSize); err != nil {
		return submission.FileTooLarge(field)
	}
	return nil
}

// imageExtensions maps the accepted extensions to the content type they
// are served with.
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Extension keeps the client's extension when it is an image one and
// otherwise derives it from the declared type, so stored names never end in
// something a browser would render as markup.
func Extension(fh *multipart.FileHeader) string {
	ext := file.GetExtension(fh)
	if _, ok := imageExtensions[strings.ToLower(ext)]; ok {
		return ext
	}
	if file.DeclaredMIMEType(fh) == "image/png" {
		return ".png"
	}
	return ".jpg"
}

// ContentType returns the type an upload named name is served with, or ""
// when the name does not carry an image extension.
func ContentType(name string) string {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// Place writes fh as "<field>_<uuid><ext>" with ext chosen by Extension.
func (u *Uploader) Place(ctx context.Context, field string, fh *multipart.FileHeader, origin string) (submission.Asset, error) {
	name := field + "_" + uuid.NewString() + Extension(fh)

	stored, err := u.storage.Save(ctx, fh, name)
	if err != nil {
		u.log.ErrorContext(ctx, "failed to store upload",
			logger.Component("upload"),
			logger.Field(field),
			logger.Error(err),
		)
		return submission.Asset{}, submission.StorageWrite(field, err)
	}

	return submission.Asset{
		Field:    field,
		Filename: name,
		Path:     stored.RelativePath,
		URL:      u.publicURL(origin, stored.RelativePath),
	}, nil
}

func (u *Uploader) Remove(ctx context.Context, asset submission.Asset) error {
	return u.storage.Delete(ctx, asset.Path)
}

// publicURL makes path-only storage URLs absolute using the request origin.
func (u *Uploader) publicURL(origin, rel string) string {
	raw := u.storage.URL(rel)
	if !strings.HasPrefix(raw, "/") || origin == "" {
		return raw
	}
	return strings.TrimRight(origin, "/") + u.basePath + raw
}

// Origin returns scheme://host of r, honoring X-Forwarded-Proto set by a
// TLS-terminating proxy.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		proto, _, _ = strings.Cut(proto, ",")
		scheme = strings.ToLower(strings.TrimSpace(proto))
	}
	return scheme + "://" + r.Host
}
