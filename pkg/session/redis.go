package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed Store. Sessions are serialized as JSON under
// a token key, with an ID index key so Delete by ID works. Keys expire with
// the session.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures the RedisStore.
type RedisStoreOption func(*RedisStore)

// WithPrefix sets the Redis key prefix (default "session").
func WithPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
//
// Example:
//
//	opt, _ := redis.ParseURL(os.Getenv("REDIS_URL"))
//	store := session.NewRedisStore(redis.NewClient(opt))
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "session"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create persists a new session.
func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess)
}

// Get retrieves a session by token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		_ = s.Delete(ctx, sess.ID)
		return nil, ErrExpired
	}
	return &sess, nil
}

// Update saves changes to an existing session.
// A token rotation leaves the old token key to expire on its own.
func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	sess.LastActiveAt = time.Now()
	return s.write(ctx, sess)
}

// Delete removes a session by ID.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	token, err := s.client.Get(ctx, s.idKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return s.client.Del(ctx, s.tokenKey(token), s.idKey(id)).Err()
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(sess.Token), data, ttl)
	pipe.Set(ctx, s.idKey(sess.ID), sess.Token, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) tokenKey(token string) string {
	return s.prefix + ":token:" + token
}

func (s *RedisStore) idKey(id string) string {
	return s.prefix + ":id:" + id
}

var _ Store = (*RedisStore)(nil)
