package adt

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAlreadyLocked     = errors.New("already locked")
	ErrNotLocked         = errors.New("not locked")
	ErrLockResult        = errors.New("lock response does not have lock result")
	ErrLockHandle        = errors.New("lock response does not contain lock handle")
	ErrActivation        = errors.New("could not activate the object")
	ErrUnsupportedFormat = errors.New("unsupported text representation")
	ErrCSRFToken         = errors.New("discovery response does not have x-csrf-token")
)

// HTTPRequestError is returned for every response with status code >= 400.
type HTTPRequestError struct {
	Request    *http.Request
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       string
}

func (e *HTTPRequestError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.URL, e.Body, e.StatusCode)
	}
	return fmt.Sprintf("%s %s (status %d)", e.Method, e.URL, e.StatusCode)
}

// SerializationError reports a member whose value could not be resolved
// while marshalling.
type SerializationError struct {
	Member string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize %s: %v", e.Member, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
