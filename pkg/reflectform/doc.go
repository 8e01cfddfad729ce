// Package reflectform re-populates rendered form controls with previously
// submitted values, so form data survives a round trip without the page
// author wiring it manually.
//
// Reflection is a pure rendering-time transform: it consumes a document tree
// and the decoded submission, and produces a new tree with rewritten leaf
// props. It has no effect on the submission itself.
package reflectform
