// Package submission implements the form submission pipeline shared by the
// contact and application forms.
//
// A Descriptor names the table, the ordered columns and the upload fields of
// one form. Pipeline.Submit takes a raw Request through these stages and stops
// at the first failure:
//
//	sanitize → cooldown → honeypot → upload check → field validation →
//	upload placement → insert → admin + submitter email → cooldown record
//
// Dependencies (cooldown state, upload storage, database, mailer) are injected
// as small interfaces. Failures are *Error values whose Kind is one of the
// Err* sentinels, so callers map them to responses with errors.Is and show
// Message to the client.
package submission
