package formbody

import (
	"encoding/json"
	"errors"
	"net/http"
)

// DecodeJSON decodes an application/json object body into Values. JSON field
// values keep their decoded types; sequence semantics are preserved for
// arrays. Requests with another method or content type pass through
// untouched (nil, nil). Non-object JSON bodies fail with a *DecodeError.
func DecodeJSON(r *http.Request) (Values, error) {
	if !bodyMethods[r.Method] || mediaType(r) != "application/json" {
		return nil, nil
	}

	raw, err := readBody(r, defaultMaxBodySize)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return Values{}, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, decodeErr(errors.New("expected a JSON object body"))
	}
	return Values(decoded), nil
}

// DecodeText captures a text/plain body as a string. Requests with another
// method or content type pass through untouched ("", false, nil).
func DecodeText(r *http.Request) (string, bool, error) {
	if !bodyMethods[r.Method] || mediaType(r) != "text/plain" {
		return "", false, nil
	}
	raw, err := readBody(r, defaultMaxBodySize)
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

// DecodeRaw captures any body as bytes, regardless of content type.
// Requests without a body-carrying method pass through (nil, nil).
func DecodeRaw(r *http.Request) ([]byte, error) {
	if !bodyMethods[r.Method] {
		return nil, nil
	}
	return readBody(r, defaultMaxBodySize)
}
