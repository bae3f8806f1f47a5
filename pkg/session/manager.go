package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/formintake/pkg/cookie"
)

// Manager handles session operations
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	errorHandler  ErrorHandler
	activityChan  chan activityUpdate
	done          chan struct{}
}

type activityUpdate struct {
	token string
	time  time.Time
}

// New creates a new session manager with the given options.
// Without WithTransport, a cookie manager is required; when the config names
// a header, the token is also accepted from and echoed in that header.
func New(opts ...Option) *Manager {
	m := &Manager{
		config:       DefaultConfig(),
		errorHandler: defaultErrorHandler,
		activityChan: make(chan activityUpdate, 1000),
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		var transport Transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
		if m.config.HeaderName != "" {
			transport = MultiTransport(transport, NewHeaderTransport(m.config.HeaderName))
		}
		m.transport = transport
	}

	go m.activityWorker()

	return m
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, "Session error", http.StatusInternalServerError)
}

// Ensure returns the request's session, creating a new one when the token is
// missing, unknown or expired. The new token overwrites any stale one held by
// the client.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err == nil {
		if m.shouldUpdateActivity(session) {
			m.queueActivityUpdate(session.Token)
		}
		return session, nil
	}
	if errors.Is(err, ErrStoreFailure) {
		return nil, err
	}

	session, err = m.createSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, session.Token, m.config.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}

	return session, nil
}

// Get retrieves an existing session
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Save persists changes made to the session's data
func (m *Manager) Save(ctx context.Context, session *Session) error {
	session.Touch()
	return m.store.Update(ctx, session)
}

func (m *Manager) createSession(ctx context.Context) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := NewSession(token, m.calculateExpiry(now, now).Sub(now))

	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (m *Manager) shouldUpdateActivity(session *Session) bool {
	return time.Since(session.LastActivityAt) >= m.config.ActivityUpdateThreshold
}

// queueActivityUpdate drops the update when the worker is saturated
func (m *Manager) queueActivityUpdate(token string) {
	select {
	case m.activityChan <- activityUpdate{token: token, time: time.Now()}:
	default:
	}
}

func (m *Manager) activityWorker() {
	for {
		select {
		case update := <-m.activityChan:
			_ = m.store.UpdateActivity(context.Background(), update.token, update.time)
		case <-m.done:
			for {
				select {
				case update := <-m.activityChan:
					_ = m.store.UpdateActivity(context.Background(), update.token, update.time)
				default:
					return
				}
			}
		}
	}
}

// Close stops the activity worker after draining queued updates
func (m *Manager) Close() error {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	return nil
}

// calculateExpiry returns the earlier of the idle and max lifetime deadlines
func (m *Manager) calculateExpiry(createdAt, now time.Time) time.Time {
	idleExpiry := now.Add(m.config.IdleTimeout)
	maxExpiry := createdAt.Add(m.config.MaxLifetime)

	if maxExpiry.Before(idleExpiry) {
		return maxExpiry
	}
	return idleExpiry
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
