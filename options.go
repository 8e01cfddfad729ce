package formpage

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formpage/internal"
	"github.com/dmitrymomot/formpage/pkg/logger"
	"github.com/dmitrymomot/formpage/pkg/session"
)

// Option configures an App during New.
type Option = internal.Option

// SessionOption configures session management.
type SessionOption = internal.SessionOption

// WithAddress sets the server listen address. Default is ":8080".
func WithAddress(addr string) Option {
	return internal.WithAddress(addr)
}

// WithBaseContext sets the base context for the server lifecycle.
func WithBaseContext(ctx context.Context) Option {
	return internal.WithBaseContext(ctx)
}

// WithPage registers a page constructor at a URL pattern.
func WithPage(pattern string, ctor Constructor) Option {
	return internal.WithPage(pattern, ctor)
}

// WithStaticFiles mounts a static file handler at a URL prefix.
func WithStaticFiles(pattern string, root http.FileSystem) Option {
	return internal.WithStaticFiles(pattern, root)
}

// WithLogger sets the application logger, wrapping it with per-request
// context extraction.
func WithLogger(log *slog.Logger, extractors ...logger.ContextExtractor) Option {
	return internal.WithLogger(log, extractors...)
}

// WithSession enables session support backed by the given store.
func WithSession(store session.Store, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithSessionCookieName overrides the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

// WithSessionTTL overrides how long sessions live.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return internal.WithSessionTTL(ttl)
}

// WithSecureCookie marks the session cookie Secure. Enable behind TLS.
func WithSecureCookie(secure bool) SessionOption {
	return internal.WithSecureCookie(secure)
}

// WithShutdownTimeout sets how long Run waits during graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return internal.WithShutdownTimeout(timeout)
}

// WithShutdownHook registers a function to run during graceful shutdown.
func WithShutdownHook(hook func(ctx context.Context) error) Option {
	return internal.WithShutdownHook(hook)
}
