// Package formbody decodes request bodies into the normalized field and file
// maps the page engine consumes.
//
// Every decoder enforces the same contract: a field submitted exactly once
// surfaces as a scalar, a field submitted more than once surfaces as an
// ordered sequence. Decoders compose — a page may activate multipart, json,
// and urlencoded decoding together, and each activates only for its own
// content type.
//
// Multipart decoding streams file parts to temporary files; the File values
// it produces are request-scoped and must be removed at request teardown.
package formbody
