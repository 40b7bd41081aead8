package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCanceled     = errors.New("request canceled")
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrTokenExpired = errors.New("token expired")
)

// NetworkError describes a failed round-trip: either a transport failure
// (StatusCode is 0 and Err is set) or a non-2xx response.
type NetworkError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is maps the status code onto the package sentinels.
func (e *NetworkError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// IsCanceled reports whether err is the canceled outcome of a request.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
