package cache

import (
	"encoding/json"
	"log"
	"strings"
	"time"
)

const (
	// DefaultTTL is the maximum age of an entry before it is treated as absent.
	DefaultTTL = 24 * time.Hour

	// KeyPrefix namespaces every key written to the Store.
	KeyPrefix = "country_cache_"
)

// now is a small indirection to allow test stubbing.
var now = time.Now

// envelope is the persisted layout of one entry.
type envelope struct {
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	Data      json.RawMessage `json:"data"`
}

// ExpiringCache stores JSON-serializable values with a fixed time-to-live on top of
// a Store. Expired entries are evicted lazily on read. Write failures are logged and
// swallowed; the cache is an optimization, never a source of errors.
type ExpiringCache struct {
	store Store
	ttl   time.Duration
}

// NewExpiringCache returns a cache over store. ttl <= 0 selects DefaultTTL.
func NewExpiringCache(store Store, ttl time.Duration) *ExpiringCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ExpiringCache{store: store, ttl: ttl}
}

// TTL returns the configured time-to-live.
func (c *ExpiringCache) TTL() time.Duration {
	return c.ttl
}

// Get decodes the value stored under key into dst. It reports false when the key is
// absent, expired, or unreadable; expired and unreadable entries are deleted.
func (c *ExpiringCache) Get(key string, dst any) bool {
	storageKey := KeyPrefix + key
	raw, ok, err := c.store.Get(storageKey)
	if err != nil {
		log.Printf("cache: read %q failed: %v", storageKey, err)
		return false
	}
	if !ok {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.evict(storageKey)
		return false
	}
	if c.expired(env) {
		c.evict(storageKey)
		return false
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		c.evict(storageKey)
		return false
	}
	return true
}

// Set stores value under key with the current time as its timestamp, overwriting any
// prior entry.
func (c *ExpiringCache) Set(key string, value any) {
	storageKey := KeyPrefix + key
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encode %q failed: %v", storageKey, err)
		return
	}
	raw, err := json.Marshal(envelope{Timestamp: now().UnixMilli(), Data: data})
	if err != nil {
		log.Printf("cache: encode %q failed: %v", storageKey, err)
		return
	}
	if err := c.store.Set(storageKey, raw); err != nil {
		log.Printf("cache: write %q failed, continuing without it: %v", storageKey, err)
	}
}

// PurgeExpired sweeps the store and deletes every expired or unreadable entry.
// It returns the number of entries removed.
func (c *ExpiringCache) PurgeExpired() (int, error) {
	keys, err := c.store.Keys(KeyPrefix)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, storageKey := range keys {
		raw, ok, err := c.store.Get(storageKey)
		if err != nil || !ok {
			continue
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && !c.expired(env) {
			continue
		}
		if c.evict(storageKey) {
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of entries currently stored, expired ones included.
func (c *ExpiringCache) Len() (int, error) {
	keys, err := c.store.Keys(KeyPrefix)
	return len(keys), err
}

func (c *ExpiringCache) expired(env envelope) bool {
	age := now().Sub(time.UnixMilli(env.Timestamp))
	return age > c.ttl
}

func (c *ExpiringCache) evict(storageKey string) bool {
	if err := c.store.Delete(storageKey); err != nil {
		log.Printf("cache: delete %q failed: %v", storageKey, err)
		return false
	}
	return true
}

// CompositeKey builds an order-independent key from parts: they are de-duplicated,
// sorted and joined with "_".
func CompositeKey(prefix string, parts []string) string {
	return prefix + strings.Join(SortedUnique(parts), "_")
}
