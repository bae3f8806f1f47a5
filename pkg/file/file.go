package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// File describes a stored upload.
type File struct {
	Filename     string // sanitized client filename
	Size         int64
	MIMEType     string
	Extension    string
	AbsolutePath string // empty for object storage
	RelativePath string
}

// Storage persists uploaded files under a backend-relative path.
type Storage interface {
	Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
	// URL returns the public location of path. Local storage returns a
	// path-only URL; object storage returns an absolute one.
	URL(path string) string
}

// GetExtension returns the file extension including the dot, as sent.
func GetExtension(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return filepath.Ext(SanitizeFilename(fh.Filename))
}

// DeclaredMIMEType returns the media type the client sent for the part,
// without parameters. Empty when the header is missing or malformed.
func DeclaredMIMEType(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	raw := fh.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

// GetMIMEType sniffs the content type from the first 512 bytes of the file.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	return http.DetectContentType(buf[:n]), nil
}

// contentType prefers the declared type and falls back to sniffing.
func contentType(fh *multipart.FileHeader) string {
	if t := DeclaredMIMEType(fh); t != "" {
		return t
	}
	if t, err := GetMIMEType(fh); err == nil {
		return t
	}
	return "application/octet-stream"
}

// ValidateSize checks fh.Size against maxBytes.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", fh.Size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ValidateDeclaredType checks the client-declared content type against
// allowedTypes. No allowed types means anything goes.
func ValidateDeclaredType(fh *multipart.FileHeader, allowedTypes ...string) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if len(allowedTypes) == 0 {
		return nil
	}

	declared := DeclaredMIMEType(fh)
	if slices.Contains(allowedTypes, declared) {
		return nil
	}

	return fmt.Errorf("MIME type %q not in allowed types %v: %w", declared, allowedTypes, ErrMIMETypeNotAllowed)
}

// SanitizeFilename strips directory components and NUL bytes.
// Returns "unnamed" for empty or special directory references.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
