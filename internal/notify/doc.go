// Package notify sends the two confirmation emails of a stored submission:
// first to the site administrator, then to the submitter.
//
// Bodies are templ components rendered to HTML. Application form emails
// carry the configured blind copy and link the uploaded images.
package notify
