// Package file stores uploaded multipart files on the local filesystem or in
// S3-compatible object storage and exposes the small set of helpers needed to
// vet an upload before it is written: declared content type, extension and
// size checks.
//
// Both backends implement Storage. LocalStorage writes to a temporary file in
// the destination directory and renames it into place, so a failed or
// canceled upload never leaves a partial file behind.
//
//	store, err := file.NewLocalStorage("./uploads", "/uploads/")
//	if err != nil {
//		return err
//	}
//	f, err := store.Save(ctx, fh, "passport_image_1b4e.jpg")
//	if err != nil {
//		return err
//	}
//	url := store.URL(f.RelativePath)
package file
