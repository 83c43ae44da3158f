package service

import (
	"errors"
	"fmt"
)

// UpstreamError reports a failed call to an external collaborator (product search, auth).
// The screen shows an empty state with a retry affordance; nothing local is changed.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

// ErrUnauthorized is returned when the auth backend rejects the credentials or token
var ErrUnauthorized = errors.New("unauthorized")
