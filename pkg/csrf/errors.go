package csrf

import "errors"

// CSRF errors.
var (
	// ErrSessionRequired is returned when the CSRF middleware runs without a
	// session in place. Compose it after session middleware.
	ErrSessionRequired = errors.New("csrf: session middleware must run before csrf middleware")

	// ErrInvalidToken is returned when a mutating request carries a missing
	// or unverifiable token.
	ErrInvalidToken = errors.New("csrf: invalid token")

	// ErrNoSecret is returned when a token is requested without a secret.
	ErrNoSecret = errors.New("csrf: secret required")
)
