package internal

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/pkg/csrf"
	"github.com/dmitrymomot/formpage/pkg/formbody"
	"github.com/dmitrymomot/formpage/pkg/htmltree"
	"github.com/dmitrymomot/formpage/pkg/logger"
	"github.com/dmitrymomot/formpage/pkg/validator"
)

// stubPage scripts each lifecycle phase for evaluator tests.
type stubPage struct {
	*Base
	init       func(c Context) error
	middleware func(c Context, ch *Chain) error
	render     func(c Context) (any, error)
	finished   int
	finishErr  error
}

func newStubPage() *stubPage {
	return &stubPage{Base: NewBase()}
}

func (p *stubPage) Init(c Context) error {
	if p.init != nil {
		return p.init(c)
	}
	return nil
}

func (p *stubPage) Middleware(c Context, ch *Chain) error {
	p.Bind(ch)
	if p.middleware != nil {
		return p.middleware(c, ch)
	}
	return nil
}

func (p *stubPage) Render(c Context) (any, error) {
	if p.render != nil {
		return p.render(c)
	}
	return nil, nil
}

func (p *stubPage) Finish(c Context) error {
	p.finished++
	return p.finishErr
}

func eval(t *testing.T, page *stubPage, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := newContext(rec, r, logger.NewNope(), nil)
	evalPage(c, func() Page { return page })
	return rec
}

func TestEvalPageLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("string result renders as plain text", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.render = func(Context) (any, error) { return "hello", nil }

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "hello", rec.Body.String())
		require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("tree result renders as document", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.render = func(Context) (any, error) {
			return htmltree.El("html", nil, htmltree.El("body", nil, "hi")), nil
		}

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "<!DOCTYPE html><html><body>hi</body></html>", rec.Body.String())
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("other result encodes as json", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.render = func(Context) (any, error) {
			return map[string]int{"count": 3}, nil
		}

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"count":3}`, rec.Body.String())
	})

	t.Run("nil result writes nothing", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, rec.Body.String())
	})

	t.Run("finish runs exactly once", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, 1, page.finished)
	})

	t.Run("finish failure never reaches the client", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.render = func(Context) (any, error) { return "ok", nil }
		page.finishErr = errors.New("cleanup boom")

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", rec.Body.String())
	})

	t.Run("finish runs on render failure", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.render = func(Context) (any, error) { return nil, errors.New("boom") }

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, 1, page.finished)
	})

	t.Run("panic resolves to 500 and still finishes", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.render = func(Context) (any, error) { panic("kaboom") }

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal server error", rec.Body.String())
		require.Equal(t, 1, page.finished)
	})

	t.Run("handler error stops the chain", func(t *testing.T) {
		t.Parallel()

		var reached bool
		page := newStubPage()
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(func(Context) error { return errors.New("denied") })
			ch.Add(func(Context) error { reached = true; return nil })
			return nil
		}
		page.render = func(Context) (any, error) { return "rendered", nil }

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.False(t, reached)
	})

	t.Run("written response suppresses later handlers and render", func(t *testing.T) {
		t.Parallel()

		var reached bool
		page := newStubPage()
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(func(c Context) error { return c.String(http.StatusAccepted, "early") })
			ch.Add(func(Context) error { reached = true; return nil })
			return nil
		}
		page.render = func(Context) (any, error) { return "late", nil }

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Equal(t, "early", rec.Body.String())
		require.False(t, reached)
	})

	t.Run("init failure skips middleware", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.init = func(Context) error { return errors.New("no state") }
		page.middleware = func(c Context, ch *Chain) error {
			t.Fatal("middleware must not run")
			return nil
		}

		rec := eval(t, page, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestWriteErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation errors map to 400",
			err:        validator.Apply("name", "", validator.Required()),
			wantStatus: http.StatusBadRequest,
			wantBody:   "name: field is required",
		},
		{
			name:       "decode errors keep their status",
			err:        &formbody.DecodeError{Err: errors.New("bad"), Status: http.StatusRequestEntityTooLarge},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "invalid token maps to 403",
			err:        csrf.ErrInvalidToken,
			wantStatus: http.StatusForbidden,
			wantBody:   "invalid request token",
		},
		{
			name:       "http errors keep their code and message",
			err:        NewHTTPError(http.StatusNotFound, "no such thing"),
			wantStatus: http.StatusNotFound,
			wantBody:   "no such thing",
		},
		{
			name:       "unknown errors map to generic 500",
			err:        errors.New("db exploded"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
		{
			name:       "setup order maps to 500",
			err:        ErrSetupOrder,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			c := newContext(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger.NewNope(), nil)
			writeError(c, tc.err)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				require.Equal(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestClickDispatch(t *testing.T) {
	t.Parallel()

	postForm := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}

	decodeBody := func(c Context) error {
		values, err := formbody.DecodeURLEncoded(c.Request())
		if err != nil {
			return err
		}
		if values != nil {
			c.SetBody(values)
		}
		return nil
	}

	t.Run("matching click runs the action", func(t *testing.T) {
		t.Parallel()

		var ran bool
		page := newStubPage()
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(decodeBody)
			return page.ConnectClick("save", func(Context) error { ran = true; return nil })
		}
		page.render = func(Context) (any, error) { return "done", nil }

		rec := eval(t, page, postForm("click=save"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, ran)
	})

	t.Run("non-matching click is skipped", func(t *testing.T) {
		t.Parallel()

		var ran bool
		page := newStubPage()
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(decodeBody)
			return page.ConnectClick("save", func(Context) error { ran = true; return nil })
		}

		eval(t, page, postForm("click=other"))
		require.False(t, ran)
	})

	t.Run("action error is recovered into the page error slot", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(decodeBody)
			return page.ConnectClick("save", func(Context) error {
				return validator.Apply("name", "", validator.Required())
			})
		}
		page.render = func(Context) (any, error) {
			require.Error(t, page.Error())
			return "re-rendered", nil
		}

		rec := eval(t, page, postForm("click=save"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "re-rendered", rec.Body.String())
	})

	t.Run("recovery can be disabled per binding", func(t *testing.T) {
		t.Parallel()

		page := newStubPage()
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(decodeBody)
			return page.ConnectClick("save", func(Context) error {
				return errors.New("fatal failure")
			}, WithoutClickRecovery())
		}
		page.render = func(Context) (any, error) { return "never", nil }

		rec := eval(t, page, postForm("click=save"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("connect before bind fails", func(t *testing.T) {
		t.Parallel()

		base := NewBase()
		err := base.ConnectClick("save", func(Context) error { return nil })
		require.ErrorIs(t, err, ErrSetupOrder)
	})

	t.Run("custom click field", func(t *testing.T) {
		t.Parallel()

		var ran bool
		page := newStubPage()
		page.SetClickField("action")
		page.middleware = func(c Context, ch *Chain) error {
			ch.Add(decodeBody)
			return page.ConnectClick("save", func(Context) error { ran = true; return nil })
		}

		eval(t, page, postForm("action=save"))
		require.True(t, ran)
	})
}
