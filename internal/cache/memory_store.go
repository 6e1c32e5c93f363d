package cache

import (
	"strings"
	"sync"
)

// MemoryStore is a map-backed Store with optional concurrency safety and an
// optional entry quota.
type MemoryStore struct {
	// If muPtr is nil, the store is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex

	items      map[string][]byte
	maxEntries int
}

// Options controls construction of a MemoryStore.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	ConcurrencySafe bool

	// MaxEntries bounds the number of keys; Set of a new key beyond it fails with
	// ErrQuotaExceeded. Zero means unbounded.
	MaxEntries int
}

// NewMemoryStore constructs a new MemoryStore with the given options.
func NewMemoryStore(opts Options) *MemoryStore {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &MemoryStore{
		muPtr:      mu,
		items:      make(map[string][]byte),
		maxEntries: opts.MaxEntries,
	}
}

func (s *MemoryStore) lockR() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.RLock()
	return s.muPtr.RUnlock
}

func (s *MemoryStore) lockW() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.Lock()
	return s.muPtr.Unlock
}

// Get implements Store.Get.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	unlock := s.lockR()
	defer unlock()

	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Store.Set.
func (s *MemoryStore) Set(key string, value []byte) error {
	unlock := s.lockW()
	defer unlock()

	if _, exists := s.items[key]; !exists && s.maxEntries > 0 && len(s.items) >= s.maxEntries {
		return ErrQuotaExceeded
	}
	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements Store.Delete.
func (s *MemoryStore) Delete(key string) error {
	unlock := s.lockW()
	defer unlock()
	delete(s.items, key)
	return nil
}

// Keys implements Store.Keys.
func (s *MemoryStore) Keys(prefix string) ([]string, error) {
	unlock := s.lockR()
	defer unlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	unlock := s.lockR()
	defer unlock()
	return len(s.items)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	unlock := s.lockW()
	defer unlock()
	s.items = make(map[string][]byte)
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)
