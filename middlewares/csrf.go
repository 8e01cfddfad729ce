package middlewares

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/formpage/internal"
	"github.com/dmitrymomot/formpage/pkg/csrf"
	"github.com/dmitrymomot/formpage/pkg/session"
)

const (
	// csrfSecretKey is the session key holding the per-visitor token secret.
	csrfSecretKey = "csrfSecret"

	// CSRFField is the form field carrying the request token.
	CSRFField = "requestValidation"
)

// csrfTokenKey is the request context key for the freshly issued token.
type csrfTokenKey struct{}

// safeMethods never mutate state and are exempt from token verification.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// CSRF protects the page's form submissions. Safe methods receive a fresh
// token derived from a session-bound secret; every other method must carry a
// valid token in the CSRFField body field or the request fails with
// csrf.ErrInvalidToken. A fresh token is issued after verification too, so
// re-rendered forms stay submittable.
//
// Requires a session store; without one the handler fails with
// csrf.ErrSessionRequired.
func CSRF(opts ...csrf.TokensOption) internal.HandlerFunc {
	tokens := csrf.NewTokens(opts...)

	return func(c internal.Context) error {
		sess, err := c.Session()
		if err != nil {
			return fmt.Errorf("%w: %w", csrf.ErrSessionRequired, err)
		}

		secret := session.ValueOr(sess, csrfSecretKey, "")
		if secret == "" {
			secret, err = tokens.Secret()
			if err != nil {
				return err
			}
			sess.SetValue(csrfSecretKey, secret)
		}

		if !safeMethods[c.Method()] {
			if !tokens.Verify(secret, c.Body().Scalar(CSRFField)) {
				return csrf.ErrInvalidToken
			}
		}

		value, err := tokens.Create(secret)
		if err != nil {
			return err
		}
		c.Set(csrfTokenKey{}, csrf.Token{Field: CSRFField, Value: value})
		return nil
	}
}

// CSRFToken returns the token issued for this request, for embedding as a
// hidden form field. The zero Token is returned when the CSRF handler has not
// run.
func CSRFToken(c internal.Context) csrf.Token {
	tok, _ := c.Get(csrfTokenKey{}).(csrf.Token)
	return tok
}
