// Package store persists form submissions in PostgreSQL.
//
// Each insert runs in its own transaction: the form-specific statement is
// prepared, executed with the ordered column values and committed, returning
// the generated id and submitted_at. Migrations embeds the goose migrations
// creating the contact_form and application_form tables.
package store
