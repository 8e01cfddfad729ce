// Package session provides cookie-token-backed per-visitor sessions with
// pluggable persistence.
//
// The engine only requires a string-keyed mapping behind a cookie: pages
// store arbitrary values, and the CSRF middleware stores its per-session
// secret. MemoryStore serves development and tests; RedisStore serves
// production deployments.
package session
