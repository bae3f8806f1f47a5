package session

import (
	"errors"
	"net/http"
	"time"
)

// Transport carries the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
}

// HeaderTransport reads the raw token from a request header and echoes it
// back in the same response header. Form posts from scripts that cannot keep
// cookies use it.
type HeaderTransport struct {
	name string
}

func NewHeaderTransport(name string) *HeaderTransport {
	return &HeaderTransport{name: name}
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	if token := r.Header.Get(t.name); token != "" {
		return token, nil
	}
	return "", ErrSessionNotFound
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, _ time.Duration) error {
	w.Header().Set(t.name, token)
	return nil
}

// MultiTransport reads the token from the first transport that has one and
// writes it through all of them.
func MultiTransport(transports ...Transport) Transport {
	return multiTransport(transports)
}

type multiTransport []Transport

func (m multiTransport) GetToken(r *http.Request) (string, error) {
	for _, t := range m {
		if token, err := t.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (m multiTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var errs []error
	for _, t := range m {
		if err := t.SetToken(w, token, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
