package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/binder"
)

func bind(t *testing.T, r *http.Request, opts ...binder.Option) (binder.Payload, error) {
	t.Helper()
	var p binder.Payload
	err := binder.Body(opts...)(r, &p)
	return p, err
}

func TestBody_URLEncoded(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("fullName=Ada&email=ada%40example.com&tags[]=a&tags[]=b&phone=1&phone=2"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := bind(t, r)
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.Fields["fullName"])
	assert.Equal(t, "ada@example.com", p.Fields["email"])
	assert.Equal(t, []any{"a", "b"}, p.Fields["tags"])
	assert.Equal(t, "2", p.Fields["phone"])
	assert.Empty(t, p.Files)
}

func TestBody_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        map[string]any
		wantErr     bool
	}{
		{
			name:        "json object",
			contentType: "application/json",
			body:        `{"fullName":"Ada","age":36,"meta":{"a":[1,"x"]}}`,
			want: map[string]any{
				"fullName": "Ada",
				"age":      float64(36),
				"meta":     map[string]any{"a": []any{float64(1), "x"}},
			},
		},
		{
			name:        "no content type",
			contentType: "",
			body:        `{"email":"a@b.co"}`,
			want:        map[string]any{"email": "a@b.co"},
		},
		{
			name:        "urlencoded header with json body",
			contentType: "application/x-www-form-urlencoded",
			body:        `{"email":"a@b.co"}`,
			want:        map[string]any{"email": "a@b.co"},
		},
		{
			name:        "empty body",
			contentType: "application/json",
			body:        "  ",
			want:        map[string]any{},
		},
		{
			name:        "null",
			contentType: "application/json",
			body:        "null",
			want:        map[string]any{},
		},
		{name: "malformed", contentType: "application/json", body: `{"email":`, wantErr: true},
		{name: "array", contentType: "application/json", body: `[1,2]`, wantErr: true},
		{name: "trailing data", contentType: "application/json", body: `{} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			p, err := bind(t, r)
			if tt.wantErr {
				assert.ErrorIs(t, err, binder.ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Fields)
		})
	}
}

func TestBody_Multipart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Ada"))
	fw, err := mw.CreateFormFile("passport_image", "passport.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/application", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	p, err := bind(t, r)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.MultipartForm.RemoveAll() })

	assert.Equal(t, "Ada", p.Fields["fullName"])
	fh := p.Files["passport_image"]
	require.NotNil(t, fh)
	assert.Equal(t, "passport.png", fh.Filename)
	assert.EqualValues(t, len("png-bytes"), fh.Size)
	assert.NotContains(t, p.Files, "signature_image")
}

func TestBody_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing boundary", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		r.Header.Set("Content-Type", "multipart/form-data")
		_, err := bind(t, r)
		assert.ErrorIs(t, err, binder.ErrInvalidBody)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"`+strings.Repeat("x", 64)+`"}`))
		r.Header.Set("Content-Type", "application/json")
		_, err := bind(t, r, binder.WithMaxBodySize(16))
		assert.ErrorIs(t, err, binder.ErrInvalidBody)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})

	t.Run("multipart too large", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("passport_image", "passport.png")
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte{1}, 4096))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		_, err = bind(t, r, binder.WithMaxMultipartSize(1024))
		assert.ErrorIs(t, err, binder.ErrInvalidBody)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})

	t.Run("wrong target", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		var target map[string]any
		err := binder.Body()(r, &target)
		assert.ErrorIs(t, err, binder.ErrUnsupportedTarget)
	})
}
