package middlewares

import (
	"github.com/dmitrymomot/formpage/internal"
)

// SecurityHeadersConfig overrides individual response headers. Empty fields
// keep the defaults; set a field to "-" to suppress that header.
type SecurityHeadersConfig struct {
	ContentTypeOptions string
	FrameOptions       string
	ReferrerPolicy     string
	ContentSecurity    string
}

// SecurityHeaders sets conservative browser security headers on every
// response from the page.
func SecurityHeaders(cfgs ...SecurityHeadersConfig) internal.HandlerFunc {
	cfg := SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		FrameOptions:       "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		ContentSecurity:    "default-src 'self'",
	}
	if len(cfgs) > 0 {
		override := cfgs[0]
		if override.ContentTypeOptions != "" {
			cfg.ContentTypeOptions = override.ContentTypeOptions
		}
		if override.FrameOptions != "" {
			cfg.FrameOptions = override.FrameOptions
		}
		if override.ReferrerPolicy != "" {
			cfg.ReferrerPolicy = override.ReferrerPolicy
		}
		if override.ContentSecurity != "" {
			cfg.ContentSecurity = override.ContentSecurity
		}
	}

	return func(c internal.Context) error {
		setUnlessSuppressed(c, "X-Content-Type-Options", cfg.ContentTypeOptions)
		setUnlessSuppressed(c, "X-Frame-Options", cfg.FrameOptions)
		setUnlessSuppressed(c, "Referrer-Policy", cfg.ReferrerPolicy)
		setUnlessSuppressed(c, "Content-Security-Policy", cfg.ContentSecurity)
		return nil
	}
}

func setUnlessSuppressed(c internal.Context, name, value string) {
	if value != "-" {
		c.SetHeader(name, value)
	}
}
