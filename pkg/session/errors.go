package session

import "errors"

var (
	// ErrInvalidSession indicates a malformed session was passed to a store
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session has expired
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStoreFailure wraps backend errors returned by a Store
	ErrStoreFailure = errors.New("session.store_failure")
)
