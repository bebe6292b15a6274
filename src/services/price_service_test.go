package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/src/models"
)

func newTestPriceService(clock *fakeClock, stock, crypto *countingFetcher) *PriceService {
	fetchers := map[models.AssetType]PriceFetcher{}
	if stock != nil {
		fetchers[models.AssetTypeStock] = stock.Fetch
	}
	if crypto != nil {
		fetchers[models.AssetTypeCrypto] = crypto.Fetch
	}
	return NewPriceService(NewMemoryPriceCache(5*time.Minute, clock.Now), fetchers, time.Second)
}

func TestPriceServiceResolveCachesSuccess(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	stock := &countingFetcher{price: 187.5}
	s := newTestPriceService(clock, stock, nil)

	price := s.Resolve(context.Background(), models.AssetTypeStock, "AAPL")
	v, ok := price.Get()
	require.True(t, ok)
	assert.Equal(t, 187.5, v)

	price = s.Resolve(context.Background(), models.AssetTypeStock, "AAPL")
	assert.True(t, price.Valid())
	assert.Equal(t, 1, stock.Calls("AAPL"))
}

func TestPriceServiceResolveNormalizesKey(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	stock := &countingFetcher{price: 10}
	s := newTestPriceService(clock, stock, nil)

	assert.True(t, s.Resolve(context.Background(), " Stock ", " aapl ").Valid())
	assert.True(t, s.Resolve(context.Background(), models.AssetTypeStock, "AAPL").Valid())
	assert.Equal(t, []string{"AAPL"}, stock.symbols)
}

func TestPriceServiceResolveExpires(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	stock := &countingFetcher{price: 10}
	s := newTestPriceService(clock, stock, nil)

	s.Resolve(context.Background(), models.AssetTypeStock, "AAPL")
	clock.Advance(4 * time.Minute)
	s.Resolve(context.Background(), models.AssetTypeStock, "AAPL")
	assert.Equal(t, 1, stock.Calls("AAPL"))

	clock.Advance(time.Minute)
	s.Resolve(context.Background(), models.AssetTypeStock, "AAPL")
	assert.Equal(t, 2, stock.Calls("AAPL"))
}

func TestPriceServiceFailureIsAbsentAndNotCached(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	crypto := &countingFetcher{err: errors.New("rate limited")}
	s := newTestPriceService(clock, nil, crypto)

	assert.False(t, s.Resolve(context.Background(), models.AssetTypeCrypto, "BTC").Valid())
	assert.False(t, s.Resolve(context.Background(), models.AssetTypeCrypto, "BTC").Valid())
	assert.Equal(t, 2, crypto.Calls("BTC"))
}

func TestPriceServiceNonFinitePriceIsAbsent(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	crypto := &countingFetcher{price: math.NaN()}
	s := newTestPriceService(clock, nil, crypto)

	assert.False(t, s.Resolve(context.Background(), models.AssetTypeCrypto, "BTC").Valid())
	assert.False(t, s.Resolve(context.Background(), models.AssetTypeCrypto, "BTC").Valid())
	assert.Equal(t, 2, crypto.Calls("BTC"))
}

func TestPriceServiceUnknownAssetType(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	s := newTestPriceService(clock, &countingFetcher{price: 1}, nil)

	assert.False(t, s.Resolve(context.Background(), models.AssetTypeCrypto, "BTC").Valid())
	assert.False(t, s.Resolve(context.Background(), "bond", "T10").Valid())
}

func TestPriceServiceTimeout(t *testing.T) {
	slow := func(ctx context.Context, _ string) (float64, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	s := NewPriceService(NewMemoryPriceCache(time.Minute, nil), map[models.AssetType]PriceFetcher{models.AssetTypeStock: slow}, 20*time.Millisecond)

	start := time.Now()
	assert.False(t, s.Resolve(context.Background(), models.AssetTypeStock, "AAPL").Valid())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestPriceServiceRefreshBypassesCache(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	stock := &countingFetcher{price: 10}
	s := newTestPriceService(clock, stock, nil)

	s.Resolve(context.Background(), models.AssetTypeStock, "AAPL")
	stock.price = 12
	v, ok := s.Refresh(context.Background(), models.AssetTypeStock, "AAPL").Get()
	require.True(t, ok)
	assert.Equal(t, 12.0, v)
	assert.Equal(t, 2, stock.Calls("AAPL"))

	v, _ = s.Resolve(context.Background(), models.AssetTypeStock, "AAPL").Get()
	assert.Equal(t, 12.0, v)
	assert.Equal(t, 2, stock.Calls("AAPL"))
}

func TestLayeredPriceCacheBackfills(t *testing.T) {
	ctx := context.Background()
	front := NewMemoryPriceCache(time.Minute, nil)
	back := NewMemoryPriceCache(time.Minute, nil)
	layered := NewLayeredPriceCache(front, back)
	key := models.HoldingKey{AssetType: models.AssetTypeCrypto, Symbol: "ETH"}

	_, ok := layered.Get(ctx, key)
	assert.False(t, ok)

	back.Set(ctx, key, 3100)
	v, ok := layered.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, 3100.0, v)

	v, ok = front.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, 3100.0, v)

	layered.Set(ctx, models.HoldingKey{AssetType: models.AssetTypeStock, Symbol: "MSFT"}, 400)
	_, ok = back.Get(ctx, models.HoldingKey{AssetType: models.AssetTypeStock, Symbol: "MSFT"})
	assert.True(t, ok)
}

func TestPriceServicePurgeExpired(t *testing.T) {
	clock := &fakeClock{now: day("2024-01-01")}
	stock := &countingFetcher{price: 10}
	s := newTestPriceService(clock, stock, nil)
	ctx := context.Background()

	s.Resolve(ctx, models.AssetTypeStock, "AAPL")
	clock.Advance(3 * time.Minute)
	s.Resolve(ctx, models.AssetTypeStock, "MSFT")
	assert.Zero(t, s.PurgeExpired(ctx))

	clock.Advance(3 * time.Minute)
	assert.Equal(t, 1, s.PurgeExpired(ctx))
	assert.Zero(t, s.PurgeExpired(ctx))

	s.Resolve(ctx, models.AssetTypeStock, "MSFT")
	assert.Equal(t, 1, stock.Calls("MSFT"))
}
