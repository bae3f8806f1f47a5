package cooldown

import (
	"context"
	"time"

	"github.com/dmitrymomot/formintake/pkg/session"
)

// State stores when the current visitor last submitted successfully.
type State interface {
	LastSubmission(ctx context.Context) (time.Time, bool, error)
	SetLastSubmission(ctx context.Context, t time.Time) error
}

type sessionSaver interface {
	Save(ctx context.Context, s *session.Session) error
}

// SessionState keeps the timestamp in the request session placed in the
// context by session.Manager.EnsureSession.
type SessionState struct {
	saver sessionSaver
	key   string
}

func NewSessionState(saver sessionSaver, key string) *SessionState {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionState{saver: saver, key: key}
}

func (s *SessionState) LastSubmission(ctx context.Context) (time.Time, bool, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return time.Time{}, false, ErrNoSession
	}
	t, ok := sess.GetTime(s.key)
	return t, ok, nil
}

func (s *SessionState) SetLastSubmission(ctx context.Context, t time.Time) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	sess.SetTime(s.key, t)
	return s.saver.Save(ctx, sess)
}
