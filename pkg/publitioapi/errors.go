package publitioapi

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyCredentials = errors.New("empty api key or secret")
	ErrNotCreationPath  = errors.New("upload is only supported on creation paths")
	ErrEmptyUpload      = errors.New("upload data is nil")
	ErrInvalidPath      = errors.New("invalid api path")
)

// InvalidResponseError is returned when the response body is not valid JSON.
//
// URI is the full request URI including the signed query string, so the
// error message must be treated as sensitive.
type InvalidResponseError struct {
	Body string
	URI  string

	// Err is the JSON parse error
	Err error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid JSON:\n%s\nthis might be due to an internal server error, "+
		"or %q might be an invalid URI, or you may be using the wrong HTTP method", e.Body, e.URI)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// APIError is the error reported inside a JSON body with "success": false.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("publitio api error %d: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("publitio api error (http %d): %s", e.StatusCode, e.Message)
}
