package formpage

import (
	"github.com/dmitrymomot/formpage/internal"
)

// Core lifecycle types, re-exported from internal.
type (
	// App orchestrates page routing and the server lifecycle.
	App = internal.App

	// Context provides request/response access for one page lifecycle.
	Context = internal.Context

	// Page is the per-request lifecycle contract.
	Page = internal.Page

	// Constructor builds a fresh page instance for a request.
	Constructor = internal.Constructor

	// Base supplies the common page machinery; embed it in page types.
	Base = internal.Base

	// Chain collects the ordered handlers that run before a page renders.
	Chain = internal.Chain

	// HandlerFunc is a single step in a page's middleware chain.
	HandlerFunc = internal.HandlerFunc

	// ClickOption configures a single click binding.
	ClickOption = internal.ClickOption

	// DispatchResult reports what a click handler did with a request.
	DispatchResult = internal.DispatchResult

	// DispatchStatus classifies the outcome of a click action.
	DispatchStatus = internal.DispatchStatus

	// ResponseWriter is the wrapped response writer with before-write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError carries a status code and user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// PanicError wraps a panic recovered during a request.
	PanicError = internal.PanicError
)

// Click dispatch outcomes.
const (
	DispatchOK        = internal.DispatchOK
	DispatchRecovered = internal.DispatchRecovered
	DispatchFatal     = internal.DispatchFatal
)

// Sentinel errors.
var (
	// ErrSetupOrder reports a click connected before the chain was bound.
	ErrSetupOrder = internal.ErrSetupOrder

	// ErrChainFinalized reports a handler added to a chain after Build.
	ErrChainFinalized = internal.ErrChainFinalized
)

// New creates an application with the given options.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewBase creates page machinery with defaults; embed the result's type in
// page structs via composition:
//
//	type indexPage struct {
//	    *formpage.Base
//	}
//
//	func NewIndex() formpage.Page {
//	    return &indexPage{Base: formpage.NewBase()}
//	}
func NewBase() *Base {
	return internal.NewBase()
}

// NewChain creates an empty middleware chain. The engine creates one per
// request; tests may build their own.
func NewChain() *Chain {
	return internal.NewChain()
}

// WithoutClickRecovery makes click action errors fatal for one binding.
func WithoutClickRecovery() ClickOption {
	return internal.WithoutClickRecovery()
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying error to an HTTPError for logging.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// Convenience constructors for common HTTP errors.
var (
	ErrBadRequest = internal.ErrBadRequest
	ErrForbidden  = internal.ErrForbidden
	ErrNotFound   = internal.ErrNotFound
	ErrInternal   = internal.ErrInternal
)
