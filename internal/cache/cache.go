package cache

import "errors"

// ErrQuotaExceeded is returned by a Store that has no room for another entry.
var ErrQuotaExceeded = errors.New("cache: storage quota exceeded")

// Store is the persistent key/value medium behind an ExpiringCache.
// Implementations must be safe for concurrent use unless documented otherwise.
type Store interface {
	// Get returns the raw value and whether it was present.
	Get(key string) ([]byte, bool, error)

	// Set stores the value, overwriting any prior value for key.
	Set(key string, value []byte) error

	// Delete removes a key if present.
	Delete(key string) error

	// Keys returns every stored key starting with prefix.
	Keys(prefix string) ([]string, error)
}
