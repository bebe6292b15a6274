package utils_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tracker/src/utils"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTLCache(t *testing.T) {
	t.Run("should return the cached value while fresh", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		cache := utils.NewTTLCache[string, float64](5*time.Minute, clock.Now)
		cache.Set("stock:AAPL", 187.5)

		clock.Advance(4*time.Minute + 59*time.Second)
		value, found := cache.Get("stock:AAPL")
		assert.True(t, found)
		assert.Equal(t, 187.5, value)
	})

	t.Run("should miss once the ttl has elapsed", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		cache := utils.NewTTLCache[string, float64](5*time.Minute, clock.Now)
		cache.Set("crypto:BTC", 65000)

		clock.Advance(5 * time.Minute)
		_, found := cache.Get("crypto:BTC")
		assert.False(t, found)
		assert.Equal(t, 1, cache.Purge())
	})

	t.Run("should keep keys independent", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		cache := utils.NewTTLCache[string, float64](time.Minute, clock.Now)
		cache.Set("a", 1)
		clock.Advance(30 * time.Second)
		cache.Set("b", 2)
		clock.Advance(45 * time.Second)

		_, foundA := cache.Get("a")
		b, foundB := cache.Get("b")
		assert.False(t, foundA)
		assert.True(t, foundB)
		assert.Equal(t, 2.0, b)
	})

	t.Run("should overwrite and refresh on set", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		cache := utils.NewTTLCache[string, int](time.Minute, clock.Now)
		cache.Set("k", 1)
		clock.Advance(50 * time.Second)
		cache.Set("k", 2)
		clock.Advance(50 * time.Second)

		value, found := cache.Get("k")
		assert.True(t, found)
		assert.Equal(t, 2, value)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		cache := utils.NewTTLCache[int, int](time.Minute, nil)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				cache.Set(i%5, i)
				cache.Get(i % 5)
			}(i)
		}
		wg.Wait()
		for k := 0; k < 5; k++ {
			_, found := cache.Get(k)
			assert.True(t, found)
		}
	})
}
