package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and tests.
// Sessions vanish on process restart; use RedisStore in production.
type MemoryStore struct {
	byToken map[string]*Session
	byID    map[string]string // id -> token
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// MemoryStoreOption configures the MemoryStore.
type MemoryStoreOption func(*memoryStoreOptions)

type memoryStoreOptions struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired sessions are swept.
// Zero disables the background sweeper; expired sessions are still rejected
// on Get.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(o *memoryStoreOptions) {
		o.cleanupInterval = d
	}
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	o := &memoryStoreOptions{cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(o)
	}

	m := &MemoryStore{
		byToken: make(map[string]*Session),
		byID:    make(map[string]string),
		done:    make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor(o.cleanupInterval)
	}
	return m
}

// Create persists a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	m.byToken[s.Token] = &cp
	m.byID[s.ID] = s.Token
	return nil
}

// Get retrieves a session by token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	if stored.IsExpired() {
		m.remove(stored)
		return nil, ErrExpired
	}

	cp := *stored
	cp.Values = make(map[string]any, len(stored.Values))
	for k, v := range stored.Values {
		cp.Values[k] = v
	}
	return &cp, nil
}

// Update saves changes to an existing session.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldToken, ok := m.byID[s.ID]
	if !ok {
		return ErrNotFound
	}
	if oldToken != s.Token {
		delete(m.byToken, oldToken)
	}

	cp := *s
	cp.LastActiveAt = time.Now()
	m.byToken[s.Token] = &cp
	m.byID[s.ID] = s.Token
	return nil
}

// Delete removes a session by ID.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token, ok := m.byID[id]; ok {
		delete(m.byToken, token)
		delete(m.byID, id)
	}
	return nil
}

// Close stops the background sweeper. Idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryStore) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.byToken {
		if s.IsExpired() {
			m.remove(s)
		}
	}
}

// remove deletes a session from both indexes. Caller must hold the mutex.
func (m *MemoryStore) remove(s *Session) {
	delete(m.byToken, s.Token)
	delete(m.byID, s.ID)
}

var _ Store = (*MemoryStore)(nil)
