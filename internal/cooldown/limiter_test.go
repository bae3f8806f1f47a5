package cooldown_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/internal/cooldown"
	"github.com/dmitrymomot/formintake/internal/submission"
)

type memState struct {
	mu   sync.Mutex
	last *time.Time
	err  error
}

func (s *memState) LastSubmission(context.Context) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return time.Time{}, false, s.err
	}
	if s.last == nil {
		return time.Time{}, false, nil
	}
	return *s.last, true, nil
}

func (s *memState) SetLastSubmission(_ context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.last = &t
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestLimiter_Cooldown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	l := cooldown.New(&memState{}, cooldown.Config{Cooldown: time.Minute}, cooldown.WithClock(c.now))

	require.NoError(t, l.Check(ctx), "first submission is never limited")
	require.NoError(t, l.Record(ctx))

	c.t = c.t.Add(59 * time.Second)
	err := l.Check(ctx)
	assert.ErrorIs(t, err, submission.ErrRateLimited)

	var subErr *submission.Error
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "Please wait a bit before submitting again.", subErr.Message)

	c.t = c.t.Add(time.Second)
	assert.NoError(t, l.Check(ctx), "reopens once the cooldown elapsed")
}

func TestLimiter_CheckDoesNotExtend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	l := cooldown.New(&memState{}, cooldown.Config{Cooldown: time.Minute}, cooldown.WithClock(c.now))
	require.NoError(t, l.Record(ctx))

	for range 5 {
		c.t = c.t.Add(10 * time.Second)
		assert.ErrorIs(t, l.Check(ctx), submission.ErrRateLimited)
	}

	c.t = c.t.Add(10 * time.Second)
	assert.NoError(t, l.Check(ctx))
}

func TestLimiter_DefaultCooldown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	l := cooldown.New(&memState{}, cooldown.Config{}, cooldown.WithClock(c.now))
	require.NoError(t, l.Record(ctx))

	c.t = c.t.Add(cooldown.DefaultCooldown - time.Second)
	assert.ErrorIs(t, l.Check(ctx), submission.ErrRateLimited)
}

func TestLimiter_StateErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("store down")
	l := cooldown.New(&memState{err: boom}, cooldown.Config{})

	err := l.Check(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, submission.ErrRateLimited)

	assert.ErrorIs(t, l.Record(context.Background()), boom)
}
