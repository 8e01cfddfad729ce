package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formpage/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
)

// App orchestrates page routing and the server lifecycle. The route table is
// immutable after New: every page is registered up front via WithPage and a
// fresh page instance is constructed per request.
type App struct {
	// Base context for signal handling (defaults to context.Background())
	baseCtx context.Context

	logger *slog.Logger

	server       *http.Server
	router       chi.Router
	listener     net.Listener // set during Run()
	pages        []pageRoute
	staticRoutes []staticRoute

	sessionManager *SessionManager

	shutdownTimeout time.Duration
	shutdownHooks   []func(ctx context.Context) error
	done            chan struct{} // for programmatic shutdown via Stop()
	setupOnce       sync.Once
}

// pageRoute binds a URL pattern to a page constructor.
type pageRoute struct {
	pattern string
	ctor    Constructor
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	pattern string
	handler http.Handler
}

// New creates an application with the given options. The App is immutable
// after creation.
//
// Example:
//
//	app := formpage.New(
//	    formpage.WithLogger(log),
//	    formpage.WithAddress(":8080"),
//	    formpage.WithSession(session.NewMemoryStore()),
//	    formpage.WithPage("/", pages.NewIndex),
//	)
func New(opts ...Option) *App {
	router := chi.NewRouter()

	a := &App{
		logger:          logger.NewNope(),
		router:          router,
		shutdownTimeout: 30 * time.Second,
		done:            make(chan struct{}),
		server: &http.Server{
			Addr:              ":8080",
			Handler:           router,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Addr returns the server's listening address, or empty string before Run.
func (a *App) Addr() string {
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Handler returns the fully routed http.Handler. Useful for tests and for
// mounting the app under an outer mux.
func (a *App) Handler() http.Handler {
	a.setupRoutes()
	return a.router
}

// setupRoutes configures the router with page and static routes.
func (a *App) setupRoutes() {
	a.setupOnce.Do(func() {
		for _, sr := range a.staticRoutes {
			a.router.Mount(sr.pattern, sr.handler)
		}
		for _, pr := range a.pages {
			a.router.HandleFunc(pr.pattern, a.servePage(pr.ctor))
		}
	})
}

// servePage adapts a page constructor into an http.HandlerFunc running the
// full lifecycle.
func (a *App) servePage(ctor Constructor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger, a.sessionManager)
		evalPage(c, ctor)
	}
}
