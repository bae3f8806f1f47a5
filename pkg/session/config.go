package session

import "time"

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// HeaderName enables token transport in a request header for API clients
	// in addition to the cookie. Empty disables it.
	HeaderName string `env:"SESSION_HEADER_NAME" envDefault:"X-Session-Token"`

	// Store selects the backend: "memory" or "redis"
	Store string `env:"SESSION_STORE" envDefault:"memory"`

	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`

	// ActivityUpdateThreshold is the minimum time between activity updates
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for expired sessions in the memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:              "sid",
		HeaderName:              "X-Session-Token",
		Store:                   StoreMemory,
		IdleTimeout:             30 * time.Minute,
		MaxLifetime:             24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// Requires a cookie manager via options for the default cookie transport.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
