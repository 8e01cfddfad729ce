package session

import (
	"errors"
	"time"
)

// Session is a string-keyed per-visitor mapping backed by a cookie token.
// The page engine stores the CSRF secret here; pages store whatever they
// need (counters, flags) via SetValue.
type Session struct {
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
	Values       map[string]any `json:"values"`
	ID           string         `json:"id"`
	Token        string         `json:"token"` // cookie token, distinct from ID

	dirty bool
	isNew bool
}

// New creates a new session with the given ID and token.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// SetValue stores a value and marks the session for saving.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

// GetValue retrieves a value.
func (s *Session) GetValue(key string) (any, bool) {
	if s.Values == nil {
		return nil, false
	}
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes a value, marking the session dirty only if the key existed.
func (s *Session) DeleteValue(key string) {
	if s.Values == nil {
		return
	}
	if _, exists := s.Values[key]; exists {
		delete(s.Values, key)
		s.dirty = true
	}
}

// IsDirty reports whether the session has unsaved changes.
func (s *Session) IsDirty() bool { return s.dirty }

// ClearDirty marks the session as saved. Called by the store owner after persisting.
func (s *Session) ClearDirty() { s.dirty = false }

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool { return s.isNew }

// ClearNew marks the session as persisted for the first time.
func (s *Session) ClearNew() { s.isNew = false }

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Value retrieves a typed session value.
// Returns ErrNotFound if the key doesn't exist, or an error on type mismatch.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	val, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}
	typed, ok := val.(T)
	if !ok {
		return zero, errors.New("session: type mismatch for key: " + key)
	}
	return typed, nil
}

// ValueOr retrieves a typed session value, falling back to a default when the
// key is missing or the type doesn't match.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
