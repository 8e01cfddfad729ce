package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formpage/pkg/logger"
	"github.com/dmitrymomot/formpage/pkg/session"
)

// Option configures an App during New.
type Option func(*App)

// WithAddress sets the server listen address. Default is ":8080".
func WithAddress(addr string) Option {
	return func(a *App) {
		a.server.Addr = addr
	}
}

// WithBaseContext sets the base context for the server lifecycle. Run derives
// its signal-aware context from it.
func WithBaseContext(ctx context.Context) Option {
	return func(a *App) {
		a.baseCtx = ctx
	}
}

// WithPage registers a page constructor at a URL pattern. All HTTP methods
// route to the page; its middleware chain decides what each method means.
func WithPage(pattern string, ctor Constructor) Option {
	return func(a *App) {
		a.pages = append(a.pages, pageRoute{pattern: pattern, ctor: ctor})
	}
}

// WithStaticFiles mounts a static file handler at a URL prefix.
//
// Example:
//
//	formpage.WithStaticFiles("/static", http.Dir("./public"))
func WithStaticFiles(pattern string, root http.FileSystem) Option {
	return func(a *App) {
		a.staticRoutes = append(a.staticRoutes, staticRoute{
			pattern: pattern + "/*",
			handler: http.StripPrefix(pattern, http.FileServer(root)),
		})
	}
}

// WithLogger sets the application logger, wrapping it with per-request
// context extraction.
func WithLogger(log *slog.Logger, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		if log != nil {
			a.logger = logger.Wrap(log, extractors...)
		}
	}
}

// WithSession enables session support backed by the given store.
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}

// WithShutdownTimeout sets how long Run waits for in-flight requests and
// shutdown hooks. Default is 30 seconds.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(a *App) {
		if timeout > 0 {
			a.shutdownTimeout = timeout
		}
	}
}

// WithShutdownHook registers a function to run during graceful shutdown,
// after the HTTP server has stopped. Hooks run concurrently.
func WithShutdownHook(hook func(ctx context.Context) error) Option {
	return func(a *App) {
		a.shutdownHooks = append(a.shutdownHooks, hook)
	}
}
