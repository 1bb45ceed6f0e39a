package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoadsOnce(t *testing.T) {
	var loads atomic.Int64
	c := New(func(key int) (float64, error) {
		loads.Add(1)
		return float64(key) * 2, nil
	})

	for i := 0; i < 10; i++ {
		value, err := c.Get(21)
		require.NoError(t, err)
		assert.Equal(t, 42.0, value)
	}
	assert.Equal(t, int64(1), loads.Load())

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(9), stats.Hits)
	assert.Equal(t, 1, stats.Size)
}

func TestGetNewKeyKeepsExistingEntries(t *testing.T) {
	var loads atomic.Int64
	c := New(func(key int) (int, error) {
		loads.Add(1)
		return key, nil
	})

	_, err := c.Get(1)
	require.NoError(t, err)
	_, err = c.Get(2)
	require.NoError(t, err)

	assert.Equal(t, int64(2), loads.Load())
	assert.True(t, c.Contains(1))
	assert.True(t, c.Contains(2))
	assert.Equal(t, 2, c.Len())
}

func TestLoaderErrorPassesThroughUncached(t *testing.T) {
	sentinel := errors.New("bad key")
	var loads atomic.Int64
	c := New(func(key int) (int, error) {
		loads.Add(1)
		return 0, sentinel
	})

	_, err := c.Get(1)
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, c.Len(), "failed loads must not be cached")

	// the failure is recomputed, not remembered
	_, err = c.Get(1)
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, int64(2), loads.Load())
}

func TestBoundedRetentionEvictsOldest(t *testing.T) {
	var loads atomic.Int64
	c := New(func(key int) (int, error) {
		loads.Add(1)
		return key, nil
	}, WithMaxEntries(2))

	for _, key := range []int{1, 2, 3} {
		_, err := c.Get(key)
		require.NoError(t, err)
	}

	assert.False(t, c.Contains(1), "oldest entry should be evicted")
	assert.True(t, c.Contains(2))
	assert.True(t, c.Contains(3))
	assert.Equal(t, int64(1), c.Stats().Evictions)

	// an evicted key loads again on the next lookup
	_, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), loads.Load())
}

func TestConcurrentGetsCollapse(t *testing.T) {
	var loads atomic.Int64
	c := New(func(key int) (int, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return key * key, nil
	})

	const callers = 32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			value, err := c.Get(7)
			assert.NoError(t, err)
			assert.Equal(t, 49, value)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), loads.Load(), "concurrent misses must share one computation")
}

func TestConcurrentDistinctKeys(t *testing.T) {
	var loads atomic.Int64
	c := New(func(key int) (int, error) {
		loads.Add(1)
		return key, nil
	})

	var wg sync.WaitGroup
	for key := 0; key < 16; key++ {
		wg.Add(1)
		go func(key int) {
			defer wg.Done()
			for i := 0; i < 8; i++ {
				value, err := c.Get(key)
				assert.NoError(t, err)
				assert.Equal(t, key, value)
			}
		}(key)
	}
	wg.Wait()

	assert.Equal(t, int64(16), loads.Load())
	assert.Equal(t, 16, c.Len())
}
