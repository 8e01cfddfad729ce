package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formpage/pkg/csrf"
	"github.com/dmitrymomot/formpage/pkg/formbody"
	"github.com/dmitrymomot/formpage/pkg/htmltree"
	"github.com/dmitrymomot/formpage/pkg/reflectform"
	"github.com/dmitrymomot/formpage/pkg/validator"
)

// reflectOptionsProvider is implemented by pages (via Base) that want their
// rendered tree reflected against the submitted body.
type reflectOptionsProvider interface {
	ReflectOptions() reflectform.Options
}

// evalPage drives one full page lifecycle: construct, init, middleware
// setup, chain execution, render, and cleanup. Every failure mode, panics
// included, resolves into a response on this request without affecting any
// other request.
func evalPage(c *requestContext, ctor Constructor) {
	page := ctor()

	finished := false
	finish := func() {
		if finished {
			return
		}
		finished = true
		if err := page.Finish(c); err != nil {
			c.LogError("page cleanup failed", slog.String("error", err.Error()))
		}
	}
	defer finish()

	defer func() {
		if rec := recover(); rec != nil {
			perr := &PanicError{Value: rec, Stack: debug.Stack()}
			writeError(c, perr)
		}
	}()

	if err := runPhases(c, page); err != nil {
		writeError(c, err)
	}
}

func runPhases(c *requestContext, page Page) error {
	if err := page.Init(c); err != nil {
		return err
	}

	ch := NewChain()
	if err := page.Middleware(c, ch); err != nil {
		return err
	}
	handlers, err := ch.Build()
	if err != nil {
		return err
	}

	for _, h := range handlers {
		if c.Written() {
			return nil
		}
		if err := h(c); err != nil {
			return err
		}
	}
	if c.Written() {
		return nil
	}

	result, err := page.Render(c)
	if err != nil {
		return err
	}
	return writeResult(c, page, result)
}

// writeResult interprets a render result: an element tree serializes to a
// full HTML document, a template component renders as HTML, a string goes
// out as plain text, and anything else is encoded as JSON. A nil result
// writes nothing.
func writeResult(c *requestContext, page Page, result any) error {
	switch res := result.(type) {
	case nil:
		return nil
	case *htmltree.Node:
		if res == nil {
			return nil
		}
		if rp, ok := page.(reflectOptionsProvider); ok {
			res = reflectform.Reflect(res, c.Body(), rp.ReflectOptions())
		}
		var sb strings.Builder
		sb.WriteString("<!DOCTYPE html>")
		if err := res.Render(c, &sb); err != nil {
			return err
		}
		return c.HTML(http.StatusOK, sb.String())
	case templ.Component:
		c.SetHeader("Content-Type", "text/html; charset=utf-8")
		c.ResponseWriter().WriteHeader(http.StatusOK)
		return res.Render(c, c.ResponseWriter())
	case string:
		return c.String(http.StatusOK, res)
	default:
		return c.JSON(http.StatusOK, res)
	}
}

// writeError maps a lifecycle error to a response. Server-side failures are
// logged with detail but reported to the client generically.
func writeError(c *requestContext, err error) {
	if c.Written() {
		c.LogError("error after response written", slog.String("error", err.Error()))
		return
	}

	var perr *PanicError
	if errors.As(err, &perr) {
		c.LogError("panic recovered",
			slog.String("panic", perr.Error()),
			slog.String("stack", string(perr.Stack)),
		)
		writePlainError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		writePlainError(c, http.StatusBadRequest, verr.Error())
		return
	}

	var derr *formbody.DecodeError
	if errors.As(err, &derr) {
		writePlainError(c, derr.StatusCode(), derr.Error())
		return
	}

	if errors.Is(err, csrf.ErrInvalidToken) {
		writePlainError(c, http.StatusForbidden, "invalid request token")
		return
	}

	if httpErr := AsHTTPError(err); httpErr != nil {
		if httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.String("error", err.Error()))
		}
		writePlainError(c, httpErr.Code, httpErr.Message)
		return
	}

	c.LogError("request failed", slog.String("error", err.Error()))
	writePlainError(c, http.StatusInternalServerError, "internal server error")
}

func writePlainError(c *requestContext, code int, msg string) {
	if err := c.String(code, msg); err != nil {
		c.LogError("failed to write error response", slog.String("error", err.Error()))
	}
}
