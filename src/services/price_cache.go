package services

import (
	"context"
	"errors"
	"time"

	"tracker/src/models"
	"tracker/src/utils"
	redis_utils "tracker/src/utils/redis"
)

// PriceCache stores resolved prices per (asset_type, symbol). Implementations
// are best effort: a failing backend behaves like a miss.
type PriceCache interface {
	Get(ctx context.Context, key models.HoldingKey) (float64, bool)
	Set(ctx context.Context, key models.HoldingKey, price float64)
	// Purge drops expired entries and returns how many were removed.
	Purge(ctx context.Context) int
}

type memoryPriceCache struct {
	cache *utils.TTLCache[models.HoldingKey, float64]
}

// NewMemoryPriceCache returns a process-local cache. now may be nil.
func NewMemoryPriceCache(ttl time.Duration, now func() time.Time) PriceCache {
	return &memoryPriceCache{cache: utils.NewTTLCache[models.HoldingKey, float64](ttl, now)}
}

func (c *memoryPriceCache) Get(_ context.Context, key models.HoldingKey) (float64, bool) {
	return c.cache.Get(key)
}

func (c *memoryPriceCache) Set(_ context.Context, key models.HoldingKey, price float64) {
	c.cache.Set(key, price)
}

func (c *memoryPriceCache) Purge(_ context.Context) int {
	return c.cache.Purge()
}

type redisPriceCache struct {
	handler *redis_utils.RedisHandler
	ttl     time.Duration
}

// NewRedisPriceCache shares prices between the API and worker processes.
func NewRedisPriceCache(handler *redis_utils.RedisHandler, ttl time.Duration) PriceCache {
	return &redisPriceCache{handler: handler, ttl: ttl}
}

func priceKey(key models.HoldingKey) string {
	return redis_utils.GenerateKey("price", string(key.AssetType), key.Symbol)
}

func (c *redisPriceCache) Get(ctx context.Context, key models.HoldingKey) (float64, bool) {
	var price float64
	if err := c.handler.Get(ctx, priceKey(key), &price); err != nil {
		if !errors.Is(err, redis_utils.ErrKeyNotFound) {
			utils.LoggerFromContext(ctx).WithError(err).WithField("key", key.String()).Warn("price cache read failed")
		}
		return 0, false
	}
	return price, true
}

func (c *redisPriceCache) Set(ctx context.Context, key models.HoldingKey, price float64) {
	if err := c.handler.Set(ctx, priceKey(key), price, c.ttl); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("key", key.String()).Warn("price cache write failed")
	}
}

// Purge is a no-op: redis expires keys on its own.
func (c *redisPriceCache) Purge(_ context.Context) int {
	return 0
}

type layeredPriceCache []PriceCache

// NewLayeredPriceCache reads through caches in order and backfills the faster
// layers on a hit further down.
func NewLayeredPriceCache(caches ...PriceCache) PriceCache {
	return layeredPriceCache(caches)
}

func (l layeredPriceCache) Get(ctx context.Context, key models.HoldingKey) (float64, bool) {
	for i, c := range l {
		if price, ok := c.Get(ctx, key); ok {
			for j := 0; j < i; j++ {
				l[j].Set(ctx, key, price)
			}
			return price, true
		}
	}
	return 0, false
}

func (l layeredPriceCache) Set(ctx context.Context, key models.HoldingKey, price float64) {
	for _, c := range l {
		c.Set(ctx, key, price)
	}
}

func (l layeredPriceCache) Purge(ctx context.Context) int {
	removed := 0
	for _, c := range l {
		removed += c.Purge(ctx)
	}
	return removed
}
