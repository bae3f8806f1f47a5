package cooldown

import "time"

type Config struct {
	// Cooldown is the minimum time between two successful submissions of one session.
	Cooldown time.Duration `env:"FORM_COOLDOWN" envDefault:"60s"`
	// SessionKey holds the unix seconds of the last successful submission.
	// Both forms share it.
	SessionKey string `env:"FORM_COOLDOWN_SESSION_KEY" envDefault:"last_contact_form_submission"`
}

const (
	DefaultCooldown   = 60 * time.Second
	DefaultSessionKey = "last_contact_form_submission"
)
