// Package upload validates and stores the images attached to application
// form submissions.
//
// Check accepts only declared JPEG or PNG content up to 5MB and has no side
// effects. Place writes the file through a file.Storage (local directory or
// S3) under a unique "<field>_<uuid><ext>" name and reports its public URL.
// Local storage URLs are made absolute from the request origin plus the
// configured base path.
package upload
