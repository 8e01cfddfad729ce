package formbody

import (
	"fmt"
	"net/http"
)

// DecodeError reports a malformed request payload. It carries the HTTP status
// the decoding handler should answer with when it ends the response at the
// point of failure.
type DecodeError struct {
	Err    error
	Status int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("formbody: decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the failure, defaulting to 400.
func (e *DecodeError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}
	return e.Status
}

func decodeErr(err error) *DecodeError {
	return &DecodeError{Err: err, Status: http.StatusBadRequest}
}

func decodeErrStatus(err error, status int) *DecodeError {
	return &DecodeError{Err: err, Status: status}
}
