// Package internal contains the page engine core: the request context, the
// per-page middleware chain, the lifecycle evaluator, session management, and
// the application shell with its route table.
//
// The public API surface is re-exported by the root formpage package;
// applications never import this package directly.
package internal
