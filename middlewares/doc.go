// Package middlewares provides the page chain handlers: security headers,
// request logging, body decoding, session bootstrap, and CSRF protection.
//
// Each function returns a handler for one page's chain; the root package's
// Standard helper composes them in the supported order.
package middlewares
