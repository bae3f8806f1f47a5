package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/formintake/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// ErrorHandler writes the response when a session cannot be established
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithTimeouts sets the idle timeout and the maximum lifetime
func WithTimeouts(idle, maxLifetime time.Duration) Option {
	return func(m *Manager) {
		m.config.IdleTimeout = idle
		m.config.MaxLifetime = maxLifetime
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

// WithErrorHandler sets the handler used by EnsureSession on failure
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}
