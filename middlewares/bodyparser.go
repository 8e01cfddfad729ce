package middlewares

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formpage/internal"
	"github.com/dmitrymomot/formpage/pkg/formbody"
)

// Context keys for non-form payloads captured by BodyDecoder.
type textBodyKey struct{}
type rawBodyKey struct{}

// BodyDecoder decodes the request body according to the configuration and
// stores the result on the context. Decoders activate only for their own
// content type, so enabling several is safe.
//
// A malformed multipart payload ends the response at the point of failure:
// file parts are consumed as a stream and the request cannot be retried
// further down the chain. Other decoder failures propagate as errors for the
// standard mapping.
func BodyDecoder(cfg formbody.Config) internal.HandlerFunc {
	return func(c internal.Context) error {
		if cfg.Multipart != nil {
			values, files, err := formbody.DecodeMultipart(c.Request(), cfg.Multipart)
			if err != nil {
				return endDecodeFailure(c, err)
			}
			if values != nil {
				c.SetBody(values)
			}
			if files != nil {
				c.SetFiles(files)
			}
		}

		if cfg.URLEncoded {
			values, err := formbody.DecodeURLEncoded(c.Request())
			if err != nil {
				return err
			}
			if values != nil {
				c.SetBody(values)
			}
		}

		if cfg.JSON {
			values, err := formbody.DecodeJSON(c.Request())
			if err != nil {
				return err
			}
			if values != nil {
				c.SetBody(values)
			}
		}

		if cfg.Text {
			text, ok, err := formbody.DecodeText(c.Request())
			if err != nil {
				return err
			}
			if ok {
				c.Set(textBodyKey{}, text)
			}
		}

		if cfg.Raw {
			raw, err := formbody.DecodeRaw(c.Request())
			if err != nil {
				return err
			}
			if raw != nil {
				c.Set(rawBodyKey{}, raw)
			}
		}

		return nil
	}
}

// endDecodeFailure writes the decode failure response directly and stops the
// chain without an error.
func endDecodeFailure(c internal.Context, err error) error {
	status := http.StatusBadRequest
	var derr *formbody.DecodeError
	if errors.As(err, &derr) {
		status = derr.StatusCode()
	}
	c.LogWarn("body decoding failed",
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	return c.String(status, "malformed request body")
}

// TextBody returns the text/plain payload captured by BodyDecoder.
func TextBody(c internal.Context) (string, bool) {
	text, ok := c.Get(textBodyKey{}).(string)
	return text, ok
}

// RawBody returns the raw payload captured by BodyDecoder.
func RawBody(c internal.Context) ([]byte, bool) {
	raw, ok := c.Get(rawBodyKey{}).([]byte)
	return raw, ok
}
