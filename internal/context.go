package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formpage/pkg/formbody"
	"github.com/dmitrymomot/formpage/pkg/session"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component, and htmltree.Node implements it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access for one page lifecycle.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapped response writer for advanced usage
	// (before-write hooks, status inspection).
	ResponseWriter() *ResponseWriter

	// Method returns the request method.
	Method() string

	// Param returns the URL parameter value by name, or empty string.
	Param(name string) string

	// Query returns the query parameter value by name, or empty string.
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Body returns the decoded request body fields.
	// Empty until a body decoding handler has run.
	Body() formbody.Values

	// Files returns the decoded uploads.
	// Empty until multipart decoding has run.
	Files() formbody.Files

	// SetBody merges decoded fields into the request body mapping.
	// Called by body decoding handlers.
	SetBody(v formbody.Values)

	// SetFiles merges decoded uploads into the request files mapping.
	// Called by the multipart decoding handler.
	SetFiles(f formbody.Files)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// HTML writes an HTML response with the given status code.
	HTML(code int, body string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Written reports whether a response has already been written.
	Written() bool

	// Session returns the current session, loading or creating it as needed.
	// The session is persisted automatically before the first response write.
	// Returns session.ErrNotConfigured if no store was configured.
	Session() (*session.Session, error)

	// SessionValue retrieves a value from the session.
	SessionValue(key string) (any, error)

	// SetSessionValue stores a value in the session.
	SetSessionValue(key string, val any) error

	// DestroySession removes the session and clears its cookie.
	DestroySession() error

	// Logger returns the request logger.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context, retrievable via Get.
	Set(key any, value any)

	// Get retrieves a value from the request context, or nil.
	Get(key any) any
}

// requestContext implements Context. One instance exists per request and is
// never shared or pooled across requests.
type requestContext struct {
	response       *ResponseWriter
	request        *http.Request
	logger         *slog.Logger
	sessionManager *SessionManager

	session       *session.Session
	sessionLoaded bool
	saveHooked    bool
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, sm *SessionManager) *requestContext {
	return &requestContext{
		response:       NewResponseWriter(w),
		request:        r,
		logger:         logger,
		sessionManager: sm,
	}
}

// context.Context delegation to the request context.

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Request() *http.Request           { return c.request }
func (c *requestContext) Response() http.ResponseWriter    { return c.response }
func (c *requestContext) ResponseWriter() *ResponseWriter  { return c.response }
func (c *requestContext) Method() string                   { return c.request.Method }
func (c *requestContext) Param(name string) string         { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string         { return c.request.URL.Query().Get(name) }
func (c *requestContext) Header(name string) string        { return c.request.Header.Get(name) }
func (c *requestContext) SetHeader(name, value string)     { c.response.Header().Set(name, value) }
func (c *requestContext) Written() bool                    { return c.response.Written() }

type bodyKey struct{}
type filesKey struct{}

func (c *requestContext) Body() formbody.Values {
	if v, ok := c.Get(bodyKey{}).(formbody.Values); ok {
		return v
	}
	return formbody.Values{}
}

func (c *requestContext) Files() formbody.Files {
	if f, ok := c.Get(filesKey{}).(formbody.Files); ok {
		return f
	}
	return formbody.Files{}
}

func (c *requestContext) SetBody(v formbody.Values) {
	merged := c.Body()
	for k, val := range v {
		merged[k] = val
	}
	c.Set(bodyKey{}, merged)
}

func (c *requestContext) SetFiles(f formbody.Files) {
	merged := c.Files()
	for k, val := range f {
		merged[k] = val
	}
	c.Set(filesKey{}, merged)
}

// Response writers.

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) HTML(code int, body string) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, body)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

// Session management. The session is loaded lazily on first access, created
// when no valid session cookie exists, and saved by a before-write hook so the
// Set-Cookie header goes out with the response.

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}
	if c.sessionLoaded {
		return c.session, nil
	}

	sess, err := c.sessionManager.Load(c.request)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess, err = c.sessionManager.Create(c)
		if err != nil {
			return nil, err
		}
	}
	c.session = sess
	c.sessionLoaded = true
	c.hookSessionSave()
	return c.session, nil
}

func (c *requestContext) hookSessionSave() {
	if c.saveHooked {
		return
	}
	c.saveHooked = true
	c.response.OnBeforeWrite(func() {
		sess := c.session
		if sess == nil {
			return
		}
		if sess.IsNew() {
			c.sessionManager.WriteCookie(c.response, sess)
			sess.ClearNew()
		}
		if sess.IsDirty() {
			if err := c.sessionManager.Save(c, sess); err != nil {
				c.LogError("failed to save session", slog.String("error", err.Error()))
			}
			sess.ClearDirty()
		}
	})
}

func (c *requestContext) SessionValue(key string) (any, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	v, _ := sess.GetValue(key)
	return v, nil
}

func (c *requestContext) SetSessionValue(key string, val any) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	sess.SetValue(key, val)
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if err := c.sessionManager.Delete(c, sess); err != nil {
		return err
	}
	c.sessionManager.ClearCookie(c.response)
	// The next Session call creates a fresh session instead of resurrecting
	// the destroyed one.
	c.session = nil
	c.sessionLoaded = false
	return nil
}

// Logging.

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c, msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c, msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c, msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c, msg, attrs...)
}

// Request-scoped values.

func (c *requestContext) Set(key any, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
