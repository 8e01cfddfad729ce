package session

import "errors"

// Session errors.
var (
	// ErrNotConfigured is returned when session functionality is used but no
	// store was configured on the app.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")
)
