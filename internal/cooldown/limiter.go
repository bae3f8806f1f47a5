package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/formintake/internal/submission"
)

// Limiter rejects a submission made less than the cooldown after the last
// successful one.
type Limiter struct {
	state    State
	cooldown time.Duration
	now      func() time.Time
}

type Option func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

func New(state State, cfg Config, opts ...Option) *Limiter {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	l := &Limiter{
		state:    state,
		cooldown: cfg.Cooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check returns a submission.ErrRateLimited error while the cooldown runs.
func (l *Limiter) Check(ctx context.Context) error {
	last, ok, err := l.state.LastSubmission(ctx)
	if err != nil {
		return fmt.Errorf("cooldown: read state: %w", err)
	}
	if ok && l.now().Sub(last) < l.cooldown {
		return submission.RateLimited()
	}
	return nil
}

// Record starts a new cooldown period.
func (l *Limiter) Record(ctx context.Context) error {
	if err := l.state.SetLastSubmission(ctx, l.now()); err != nil {
		return fmt.Errorf("cooldown: write state: %w", err)
	}
	return nil
}
