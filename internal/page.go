package internal

import (
	"log/slog"

	"github.com/dmitrymomot/formpage/pkg/formbody"
	"github.com/dmitrymomot/formpage/pkg/reflectform"
	"github.com/dmitrymomot/formpage/pkg/sanitizer"
	"github.com/dmitrymomot/formpage/pkg/validator"
)

// Page is the per-request lifecycle contract. A fresh instance is constructed
// for every request; implementations are never shared between requests.
//
// Init runs before middleware setup and may load state the handlers depend
// on. Middleware adds handlers to the page's chain. Render produces the
// response once the chain completes without writing one. Finish runs exactly
// once after the request, success or failure, and releases page resources.
type Page interface {
	Init(c Context) error
	Middleware(c Context, ch *Chain) error
	Render(c Context) (any, error)
	Finish(c Context) error
}

// Constructor builds a fresh page instance for a request.
type Constructor func() Page

// DispatchStatus classifies the outcome of a click action.
type DispatchStatus int

const (
	// DispatchOK means no matching click was submitted, or the action
	// completed without error.
	DispatchOK DispatchStatus = iota

	// DispatchRecovered means the action failed but the error was captured
	// into the page error slot; the chain continues.
	DispatchRecovered

	// DispatchFatal means the action failed with recovery disabled; the
	// error propagates and stops the chain.
	DispatchFatal
)

// DispatchResult reports what a click handler did with a request.
type DispatchResult struct {
	Status DispatchStatus
	// Err is the action error for recovered and fatal outcomes.
	Err error
}

// ClickOption configures a single click binding.
type ClickOption func(*clickConfig)

type clickConfig struct {
	recover bool
}

// WithoutClickRecovery makes action errors fatal for this binding instead of
// being captured into the page error slot.
func WithoutClickRecovery() ClickOption {
	return func(cfg *clickConfig) {
		cfg.recover = false
	}
}

// defaultClickField is the body field that names the submitted action.
const defaultClickField = "click"

// Base supplies the common page machinery: the error slot, form encoding
// selection, reflection options, and click dispatch. Embed it in page types
// and call Bind during Middleware before connecting clicks.
//
// Base provides no-op Init and a Finish that removes uploaded temp files, so
// embedding types only implement the phases they need.
type Base struct {
	chain       *Chain
	err         error
	encoding    formbody.Encoding
	reflectOpts reflectform.Options
	clickField  string
}

// NewBase creates a Base with defaults: urlencoded forms, reflection off
// unless a node opts in, click dispatch on the "click" field.
func NewBase() *Base {
	return &Base{
		encoding:    formbody.EncodingURLEncoded,
		reflectOpts: reflectform.Options{NoReflectByDefault: true},
		clickField:  defaultClickField,
	}
}

// Bind attaches the middleware chain so ConnectClick can register handlers.
func (b *Base) Bind(ch *Chain) {
	b.chain = ch
}

// Bound reports whether a chain has been attached.
func (b *Base) Bound() bool {
	return b.chain != nil
}

// ConnectClick registers a handler that runs action when the request body's
// click field equals name. By default action errors are recovered into the
// page error slot and the chain continues; WithoutClickRecovery makes them
// fatal. Returns ErrSetupOrder when called before Bind.
func (b *Base) ConnectClick(name string, action func(c Context) error, opts ...ClickOption) error {
	if b.chain == nil {
		return ErrSetupOrder
	}
	cfg := clickConfig{recover: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	b.chain.Add(func(c Context) error {
		res := b.dispatchClick(c, name, action, cfg)
		if res.Status == DispatchFatal {
			return res.Err
		}
		return nil
	})
	return nil
}

func (b *Base) dispatchClick(c Context, name string, action func(c Context) error, cfg clickConfig) DispatchResult {
	body := c.Body()
	if !body.Has(b.clickField) || body.Scalar(b.clickField) != name {
		return DispatchResult{Status: DispatchOK}
	}
	err := action(c)
	if err == nil {
		return DispatchResult{Status: DispatchOK}
	}
	if !cfg.recover {
		return DispatchResult{Status: DispatchFatal, Err: err}
	}
	b.SetError(err)
	c.LogWarn("click action failed",
		slog.String("click", name),
		slog.String("error", err.Error()),
	)
	return DispatchResult{Status: DispatchRecovered, Err: err}
}

// SetClickField overrides the body field consulted for click dispatch.
func (b *Base) SetClickField(field string) {
	if field != "" {
		b.clickField = field
	}
}

// Error returns the captured page error, or nil. Render implementations use
// it to show validation feedback inline.
func (b *Base) Error() error {
	return b.err
}

// SetError captures an error into the page error slot.
func (b *Base) SetError(err error) {
	b.err = err
}

// ClearError resets the page error slot.
func (b *Base) ClearError() {
	b.err = nil
}

// FormEncoding returns the encoding pages render into their form tags and the
// body decoder accepts. Multipart takes priority once any handler requires it.
func (b *Base) FormEncoding() formbody.Encoding {
	return b.encoding
}

// SetFormEncoding switches the page's form encoding. Multipart is sticky:
// once set it cannot be downgraded back to urlencoded.
func (b *Base) SetFormEncoding(enc formbody.Encoding) {
	if b.encoding == formbody.EncodingFormData {
		return
	}
	b.encoding = enc
}

// ReflectOptions returns the page's form reflection options.
func (b *Base) ReflectOptions() reflectform.Options {
	return b.reflectOpts
}

// SetReflectOptions replaces the page's form reflection options.
func (b *Base) SetReflectOptions(opts reflectform.Options) {
	b.reflectOpts = opts
}

// Field reads, sanitizes, and validates a submitted body field. With no rules
// the field must be present and at most 100 characters. Validation failures
// return validator.ValidationErrors.
func (b *Base) Field(c Context, name string, rules ...validator.Rule) (string, error) {
	value := sanitizer.Strip(c.Body().Scalar(name))
	if len(rules) == 0 {
		rules = []validator.Rule{validator.Required(), validator.MaxLen(100)}
	}
	if verr := validator.Apply(name, value, rules...); verr != nil {
		return "", verr
	}
	return value, nil
}

// File returns the first uploaded file for a field. A missing upload returns
// validator.ValidationErrors so it lands in the same error slot as field
// validation.
func (b *Base) File(c Context, name string) (*formbody.File, error) {
	f := c.Files().First(name)
	if f == nil {
		verr := validator.ValidationErrors{}
		verr.Add(name, "file is required")
		return nil, verr
	}
	return f, nil
}

// Init is a no-op; embedders override it to load per-request state.
func (b *Base) Init(c Context) error {
	return nil
}

// Finish removes uploaded temp files. Embedders that override Finish should
// call this after their own cleanup.
func (b *Base) Finish(c Context) error {
	return c.Files().RemoveAll()
}
