package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Token is the per-request token handed to the render step, emitted as a
// hidden form field.
type Token struct {
	Field string // form field name carrying the token
	Value string
}

// Tokens derives and verifies request tokens from a session-bound secret.
// The secret is generated once per session; token values are salted, so a
// fresh token is derived on every request while all of them verify against
// the same secret.
type Tokens struct {
	secretLen int
	saltLen   int
}

// TokensOption configures Tokens.
type TokensOption func(*Tokens)

// WithSecretLength sets the secret length in bytes (default 18).
func WithSecretLength(n int) TokensOption {
	return func(t *Tokens) {
		if n > 0 {
			t.secretLen = n
		}
	}
}

// WithSaltLength sets the per-token salt length in bytes (default 8).
func WithSaltLength(n int) TokensOption {
	return func(t *Tokens) {
		if n > 0 {
			t.saltLen = n
		}
	}
}

// NewTokens creates a token factory.
func NewTokens(opts ...TokensOption) *Tokens {
	t := &Tokens{secretLen: 18, saltLen: 8}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Secret generates a new random session secret.
func (t *Tokens) Secret() (string, error) {
	return randomString(t.secretLen)
}

// Create derives a fresh token from the secret.
func (t *Tokens) Create(secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	salt, err := randomString(t.saltLen)
	if err != nil {
		return "", err
	}
	return salt + "." + sign(secret, salt), nil
}

// Verify reports whether the token was derived from the secret.
// Comparison is constant-time.
func (t *Tokens) Verify(secret, token string) bool {
	if secret == "" || token == "" {
		return false
	}
	salt, mac, ok := strings.Cut(token, ".")
	if !ok || salt == "" {
		return false
	}
	return hmac.Equal([]byte(mac), []byte(sign(secret, salt)))
}

// sign computes the url-safe MAC of the salt under the secret.
func sign(secret, salt string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(salt))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf: read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
