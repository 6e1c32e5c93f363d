package fetch

import (
	"errors"
	"fmt"
)

// ErrRateLimited is matched by every RateLimitError.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitMessage is the user-facing text for an exhausted rate limit.
const RateLimitMessage = "Too many requests. Please try again in a moment."

// RateLimitError is returned when every attempt was answered with 429.
type RateLimitError struct {
	URL      string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("fetch %s: rate limited after %d attempts", e.URL, e.Attempts)
}

// Is reports whether target is ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// NetworkError is returned when the last attempt failed at the transport level or
// produced a body that is not valid JSON.
type NetworkError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: network error after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
