package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultMaxMemory is the part of a multipart body kept in memory; the rest spills to disk (10MB).
	DefaultMaxMemory = 10 << 20
	// DefaultMaxBodySize bounds urlencoded and JSON bodies (1MB).
	DefaultMaxBodySize = 1 << 20
	// DefaultMaxMultipartSize bounds multipart bodies: two 5MB images plus the fields.
	DefaultMaxMultipartSize = 2*(5<<20) + DefaultMaxBodySize
)

// Payload is a decoded request body.
type Payload struct {
	Fields map[string]any
	Files  map[string]*multipart.FileHeader
}

type options struct {
	maxBodySize      int64
	maxMultipartSize int64
}

type Option func(*options)

// WithMaxMultipartSize overrides DefaultMaxMultipartSize.
func WithMaxMultipartSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMultipartSize = n
		}
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// Body returns a binder filling a *Payload from urlencoded, multipart or JSON bodies.
func Body(opts ...Option) func(r *http.Request, v any) error {
	o := options{
		maxBodySize:      DefaultMaxBodySize,
		maxMultipartSize: DefaultMaxMultipartSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(r *http.Request, v any) error {
		p, ok := v.(*Payload)
		if !ok || p == nil {
			return fmt.Errorf("%w: got %T, expected *binder.Payload", ErrUnsupportedTarget, v)
		}

		fields, files, err := decode(r, o)
		if err != nil {
			return err
		}

		p.Fields = fields
		p.Files = files
		return nil
	}
}

func decode(r *http.Request, o options) (map[string]any, map[string]*multipart.FileHeader, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return map[string]any{}, nil, nil
	}

	mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		if params["boundary"] == "" {
			return nil, nil, fmt.Errorf("%w: missing multipart boundary", ErrInvalidBody)
		}
		r.Body = http.MaxBytesReader(nil, r.Body, o.maxMultipartSize)
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, nil, invalid(err)
		}
		return formFields(r.MultipartForm.Value), firstFiles(r.MultipartForm.File), nil
	}

	raw, err := readBody(r.Body, o.maxBodySize)
	if err != nil {
		return nil, nil, err
	}

	// clients posting JSON with a form content type still get their object decoded
	if mediaType == "application/x-www-form-urlencoded" && !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		if values, err := url.ParseQuery(string(raw)); err == nil && len(values) > 0 {
			return formFields(values), nil, nil
		}
	}

	fields, err := decodeJSON(raw)
	if err != nil {
		return nil, nil, err
	}
	return fields, nil, nil
}

func readBody(body io.Reader, limit int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, invalid(err)
	}
	if int64(len(raw)) > limit {
		return nil, errors.Join(ErrInvalidBody, ErrBodyTooLarge)
	}
	return raw, nil
}

// decodeJSON accepts a JSON object, null or an empty body.
func decodeJSON(raw []byte) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// formFields flattens form values. The last value of a repeated key wins
// unless the key ends with "[]", which collects every value into a list.
func formFields(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if name, ok := strings.CutSuffix(key, "[]"); ok {
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			out[name] = list
			continue
		}
		if len(vals) == 0 {
			out[key] = ""
			continue
		}
		out[key] = vals[len(vals)-1]
	}
	return out
}

func firstFiles(files map[string][]*multipart.FileHeader) map[string]*multipart.FileHeader {
	if len(files) == 0 {
		return nil
	}
	out := make(map[string]*multipart.FileHeader, len(files))
	for name, headers := range files {
		if len(headers) > 0 {
			out[name] = headers[0]
		}
	}
	return out
}

func invalid(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errors.Join(ErrInvalidBody, ErrBodyTooLarge, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidBody, err)
}
