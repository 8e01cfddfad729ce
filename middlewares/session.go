package middlewares

import (
	"github.com/dmitrymomot/formpage/internal"
)

// EnsureSession loads the visitor's session, creating one when none exists,
// so later handlers and the render step can rely on it. The session cookie
// and any dirty values are flushed automatically before the response is
// written.
func EnsureSession() internal.HandlerFunc {
	return func(c internal.Context) error {
		_, err := c.Session()
		return err
	}
}
