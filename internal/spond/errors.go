package spond

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a single-record lookup gets a 404.
var ErrNotFound = errors.New("spond: not found")

// AuthError means the credentials were rejected or the token expired.
// A sync run hitting this fails as a whole; retrying records is pointless.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("spond: authentication failed (status %d): %s", e.Status, e.Detail)
}

// RateLimitError means the API asked us to back off.
type RateLimitError struct {
	RetryAfter string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("spond: rate limited, retry after %s", e.RetryAfter)
	}
	return "spond: rate limited"
}

// ValidationError means the API rejected the payload we sent.
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("spond: remote validation failed (status %d): %s", e.Status, e.Detail)
}

// NetworkError wraps a transport-level failure (DNS, timeout, refused).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("spond: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
