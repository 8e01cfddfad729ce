package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formpage/internal"
)

// RequestLogger logs one line per request with method, path, status, and
// duration. The line is emitted just before the first response byte so the
// final status code is known.
func RequestLogger() internal.HandlerFunc {
	return func(c internal.Context) error {
		start := time.Now()
		req := c.Request()
		rw := c.ResponseWriter()
		rw.OnBeforeWrite(func() {
			c.LogInfo("request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
		return nil
	}
}
