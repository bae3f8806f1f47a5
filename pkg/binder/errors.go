package binder

import "errors"

var (
	ErrInvalidBody       = errors.New("binder.invalid_body")
	ErrBodyTooLarge      = errors.New("binder.body_too_large")
	ErrUnsupportedTarget = errors.New("binder.unsupported_target")
)
