package lookup

import (
	"errors"
	"fmt"

	"country-explorer/internal/countries"
	"country-explorer/internal/fetch"
)

// User-facing error messages.
const (
	NotFoundMessage     = "Country not found"
	NetworkMessage      = "Network error while contacting the country service"
	RegionFailedMessage = "Failed to search by region"
	RandomFailedMessage = "Failed to get random country"
	UnexpectedMessage   = "Something went wrong, please try again"
)

// RegionSearchError wraps a failure to list or pick a country of a region.
type RegionSearchError struct {
	Region string
	Err    error
}

func (e *RegionSearchError) Error() string {
	return fmt.Sprintf("search region %q: %v", e.Region, e.Err)
}

func (e *RegionSearchError) Unwrap() error {
	return e.Err
}

// RandomSearchError wraps a failure to list or pick a random country.
type RandomSearchError struct {
	Err error
}

func (e *RandomSearchError) Error() string {
	return fmt.Sprintf("random country: %v", e.Err)
}

func (e *RandomSearchError) Unwrap() error {
	return e.Err
}

// UserMessage maps err to the message shown to the user. Region and random
// failures take precedence over the error they wrap.
func UserMessage(err error) string {
	var regionErr *RegionSearchError
	var randomErr *RandomSearchError
	var netErr *fetch.NetworkError
	switch {
	case errors.As(err, &regionErr):
		return RegionFailedMessage
	case errors.As(err, &randomErr):
		return RandomFailedMessage
	case errors.Is(err, countries.ErrNotFound):
		return NotFoundMessage
	case errors.Is(err, fetch.ErrRateLimited):
		return fetch.RateLimitMessage
	case errors.As(err, &netErr):
		return NetworkMessage
	default:
		return UnexpectedMessage
	}
}
