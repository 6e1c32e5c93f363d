package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore(Options{})
	require.NoError(t, s.Set("a", []byte("1")))

	v, ok, err := s.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)

	_, ok, err = s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_DeleteClearKeys(t *testing.T) {
	s := NewMemoryStore(Options{ConcurrencySafe: true})
	require.NoError(t, s.Set("p_1", []byte("x")))
	require.NoError(t, s.Set("p_2", []byte("y")))
	require.NoError(t, s.Set("other", []byte("z")))

	keys, err := s.Keys("p_")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"p_1", "p_2"}, keys)

	require.NoError(t, s.Delete("p_1"))
	require.Equal(t, 2, s.Len())

	s.Clear()
	require.Equal(t, 0, s.Len())
}

func TestMemoryStore_Quota(t *testing.T) {
	s := NewMemoryStore(Options{MaxEntries: 1})
	require.NoError(t, s.Set("a", []byte("1")))
	require.ErrorIs(t, s.Set("b", []byte("2")), ErrQuotaExceeded)
	// overwriting an existing key never exceeds the quota
	require.NoError(t, s.Set("a", []byte("3")))
}

func TestMemoryStore_ConcurrencySafe(t *testing.T) {
	keys := 50
	rounds := 100

	s := NewMemoryStore(Options{ConcurrencySafe: true})
	var wg sync.WaitGroup
	for i := 0; i < keys; i++ {
		key := string(rune('A' + i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				_ = s.Set(key, []byte{byte(r)})
				_, _, _ = s.Get(key)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, keys, s.Len())
}
