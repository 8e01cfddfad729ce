// Package csrf implements session-bound CSRF token issuance and verification.
//
// A secret is generated once per session and never regenerated; per-request
// token values are freshly derived from it with a random salt, so replay
// across sessions fails verification while every token issued within a
// session stays valid for that session's lifetime.
package csrf
