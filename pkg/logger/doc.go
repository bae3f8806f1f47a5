// Package logger builds *slog.Logger instances with environment-aware
// defaults, static attributes and per-record attributes pulled from the
// context (request IDs, for instance). attr.go holds the attribute
// constructors used across the service so keys stay consistent.
package logger
