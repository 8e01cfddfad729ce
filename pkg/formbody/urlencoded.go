package formbody

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// bodyMethods are the HTTP methods that may carry a request body.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// defaultMaxBodySize caps in-memory body reads for non-file decoders.
const defaultMaxBodySize = 1 << 20 // 1MB

// DecodeURLEncoded decodes an application/x-www-form-urlencoded body into
// normalized Values. Requests with another method or content type pass
// through untouched (nil, nil).
func DecodeURLEncoded(r *http.Request) (Values, error) {
	if !bodyMethods[r.Method] || mediaType(r) != "application/x-www-form-urlencoded" {
		return nil, nil
	}

	raw, err := readBody(r, defaultMaxBodySize)
	if err != nil {
		return nil, err
	}

	parsed, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, decodeErr(err)
	}
	return Normalize(parsed), nil
}

// mediaType extracts the normalized media type from the Content-Type header,
// tolerating parameters like charset and boundary.
func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	}
	return mt
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, decodeErr(err)
	}
	if int64(len(raw)) > limit {
		return nil, decodeErrStatus(errTooLarge, http.StatusRequestEntityTooLarge)
	}
	return raw, nil
}
