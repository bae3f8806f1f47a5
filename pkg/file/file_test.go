package file_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/file"
)

// createFileHeader builds a parsed multipart file header with the given
// declared content type.
func createFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{writer.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestDeclaredMIMEType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{name: "plain", contentType: "image/png", want: "image/png"},
		{name: "with params", contentType: "image/jpeg; charset=binary", want: "image/jpeg"},
		{name: "uppercase", contentType: "IMAGE/PNG", want: "image/png"},
		{name: "missing", contentType: "", want: ""},
		{name: "malformed", contentType: "/;;", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fh := createFileHeader(t, "a.png", tt.contentType, pngHeader)
			assert.Equal(t, tt.want, file.DeclaredMIMEType(fh))
		})
	}

	assert.Empty(t, file.DeclaredMIMEType(nil))
}

func TestValidateDeclaredType(t *testing.T) {
	t.Parallel()

	t.Run("declared type wins over content", func(t *testing.T) {
		t.Parallel()
		// PNG bytes declared as text are rejected; the declared type is what counts.
		fh := createFileHeader(t, "a.png", "text/plain", pngHeader)
		err := file.ValidateDeclaredType(fh, "image/jpeg", "image/png")
		assert.ErrorIs(t, err, file.ErrMIMETypeNotAllowed)
	})

	t.Run("allowed", func(t *testing.T) {
		t.Parallel()
		fh := createFileHeader(t, "a.jpg", "image/jpeg", []byte("not really a jpeg"))
		assert.NoError(t, file.ValidateDeclaredType(fh, "image/jpeg", "image/png"))
	})

	t.Run("no allow list", func(t *testing.T) {
		t.Parallel()
		fh := createFileHeader(t, "a.bin", "application/zip", []byte("x"))
		assert.NoError(t, file.ValidateDeclaredType(fh))
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, file.ValidateDeclaredType(nil, "image/png"), file.ErrNilFileHeader)
	})
}

func TestValidateSize(t *testing.T) {
	t.Parallel()

	fh := createFileHeader(t, "a.txt", "text/plain", []byte("0123456789"))

	assert.NoError(t, file.ValidateSize(fh, 10))
	assert.ErrorIs(t, file.ValidateSize(fh, 9), file.ErrFileTooLarge)
	assert.ErrorIs(t, file.ValidateSize(nil, 9), file.ErrNilFileHeader)
}

func TestGetMIMEType(t *testing.T) {
	t.Parallel()

	fh := createFileHeader(t, "a.txt", "text/plain", pngHeader)
	got, err := file.GetMIMEType(fh)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got)

	_, err = file.GetMIMEType(nil)
	assert.ErrorIs(t, err, file.ErrNilFileHeader)
}

func TestGetExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".JPG", file.GetExtension(createFileHeader(t, "Photo.JPG", "image/jpeg", []byte("x"))))
	assert.Equal(t, ".png", file.GetExtension(createFileHeader(t, "dir/../a.png", "image/png", []byte("x"))))
	assert.Equal(t, "", file.GetExtension(createFileHeader(t, "noext", "image/png", []byte("x"))))
	assert.Equal(t, "", file.GetExtension(nil))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"../../../etc/passwd": "passwd",
		`C:\Windows\file.txt`: "file.txt",
		"a\x00b.png":          "ab.png",
		"":                    "unnamed",
		"..":                  "unnamed",
		"/":                   "unnamed",
		"photo.jpg":           "photo.jpg",
	}
	for in, want := range tests {
		assert.Equal(t, want, file.SanitizeFilename(in), "input %q", in)
	}
}
