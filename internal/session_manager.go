package internal

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formpage/pkg/session"
)

const (
	defaultSessionCookie = "__sid"
	defaultSessionTTL    = 24 * time.Hour
	sessionTokenBytes    = 32
)

// SessionManager loads and persists sessions around a session.Store, owning
// the cookie contract: the cookie carries an opaque token, never the
// session ID.
type SessionManager struct {
	store      session.Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// WithSessionCookieName overrides the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(m *SessionManager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithSessionTTL overrides how long sessions live.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecureCookie marks the session cookie Secure. Enable behind TLS.
func WithSecureCookie(secure bool) SessionOption {
	return func(m *SessionManager) {
		m.secure = secure
	}
}

// NewSessionManager creates a SessionManager over the given store.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		store:      store,
		cookieName: defaultSessionCookie,
		ttl:        defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load resolves the request's session from its cookie. A missing cookie, an
// unknown token, or an expired session all yield (nil, nil): the caller
// decides whether to create a fresh session.
func (m *SessionManager) Load(r *http.Request) (*session.Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sess, err := m.store.Get(r.Context(), cookie.Value)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return nil, nil
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}
}

// Create builds and persists a fresh session.
func (m *SessionManager) Create(ctx context.Context) (*session.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	sess := session.New(uuid.New().String(), token, time.Now().Add(m.ttl))
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Save persists session changes and refreshes activity tracking.
func (m *SessionManager) Save(ctx context.Context, sess *session.Session) error {
	sess.LastActiveAt = time.Now()
	if err := m.store.Update(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the session from the store.
func (m *SessionManager) Delete(ctx context.Context, sess *session.Session) error {
	if err := m.store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// WriteCookie sets the session cookie on the response.
func (m *SessionManager) WriteCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the response.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
