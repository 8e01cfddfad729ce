package formpage

import (
	"github.com/dmitrymomot/formpage/middlewares"
	"github.com/dmitrymomot/formpage/pkg/csrf"
	"github.com/dmitrymomot/formpage/pkg/formbody"
)

// StandardOption adjusts the standard middleware composition.
type StandardOption func(*standardConfig)

type standardConfig struct {
	body            formbody.Config
	securityHeaders bool
	requestLog      bool
	session         bool
	csrf            bool
	csrfOpts        []csrf.TokensOption
}

// WithBody replaces the default body decoding configuration. Enabling
// multipart switches the page's declared form encoding automatically.
func WithBody(cfg formbody.Config) StandardOption {
	return func(sc *standardConfig) {
		sc.body = cfg
	}
}

// WithUploads enables multipart decoding with the given limits, in addition
// to urlencoded forms.
func WithUploads(cfg *formbody.MultipartConfig) StandardOption {
	return func(sc *standardConfig) {
		if cfg == nil {
			cfg = &formbody.MultipartConfig{}
		}
		sc.body.Multipart = cfg
	}
}

// WithoutSecurityHeaders drops the security header handler.
func WithoutSecurityHeaders() StandardOption {
	return func(sc *standardConfig) {
		sc.securityHeaders = false
	}
}

// WithoutRequestLog drops the per-request log line.
func WithoutRequestLog() StandardOption {
	return func(sc *standardConfig) {
		sc.requestLog = false
	}
}

// WithoutSession drops session bootstrap. Implies WithoutCSRF, since token
// secrets live in the session.
func WithoutSession() StandardOption {
	return func(sc *standardConfig) {
		sc.session = false
		sc.csrf = false
	}
}

// WithoutCSRF drops form token protection. Only for pages that never mutate
// state.
func WithoutCSRF() StandardOption {
	return func(sc *standardConfig) {
		sc.csrf = false
	}
}

// WithCSRFOptions passes token derivation options to the CSRF handler.
func WithCSRFOptions(opts ...csrf.TokensOption) StandardOption {
	return func(sc *standardConfig) {
		sc.csrfOpts = append(sc.csrfOpts, opts...)
	}
}

// Standard composes the supported middleware order onto the page's chain:
// security headers, body decoding, request logging, session bootstrap, and
// CSRF protection. It also binds the chain to the page so ConnectClick works
// afterwards, and aligns the page's declared form encoding with the active
// body decoders.
//
// Call it first inside the page's Middleware phase:
//
//	func (p *indexPage) Middleware(c formpage.Context, ch *formpage.Chain) error {
//	    formpage.Standard(p.Base, ch)
//	    return p.ConnectClick("save", p.save)
//	}
func Standard(p *Base, ch *Chain, opts ...StandardOption) {
	cfg := standardConfig{
		body:            formbody.DefaultConfig(),
		securityHeaders: true,
		requestLog:      true,
		session:         true,
		csrf:            true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p.Bind(ch)
	p.SetFormEncoding(cfg.body.FormEncoding())

	if cfg.securityHeaders {
		ch.Add(middlewares.SecurityHeaders())
	}
	ch.Add(middlewares.BodyDecoder(cfg.body))
	if cfg.requestLog {
		ch.Add(middlewares.RequestLogger())
	}
	if cfg.session {
		ch.Add(middlewares.EnsureSession())
	}
	if cfg.csrf {
		ch.Add(middlewares.CSRF(cfg.csrfOpts...))
	}
}
