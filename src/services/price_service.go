package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tracker/src/clients/coingecko"
	"tracker/src/clients/yahoo"
	"tracker/src/models"
	"tracker/src/utils"
)

const defaultPriceTimeout = 5 * time.Second

// PriceFetcher looks up the current unit price of a symbol.
type PriceFetcher func(ctx context.Context, symbol string) (float64, error)

type PriceServiceI interface {
	Resolve(ctx context.Context, assetType models.AssetType, symbol string) models.OptionalFloat
	Refresh(ctx context.Context, assetType models.AssetType, symbol string) models.OptionalFloat
	PurgeExpired(ctx context.Context) int
}

// PriceService resolves market prices through a cache. Lookups never fail:
// any upstream problem yields an absent price.
type PriceService struct {
	cache    PriceCache
	fetchers map[models.AssetType]PriceFetcher
	timeout  time.Duration
}

func NewPriceService(cache PriceCache, fetchers map[models.AssetType]PriceFetcher, timeout time.Duration) *PriceService {
	if timeout <= 0 {
		timeout = defaultPriceTimeout
	}
	return &PriceService{cache: cache, fetchers: fetchers, timeout: timeout}
}

// NewMarketPriceFetchers routes crypto to CoinGecko and stocks to Yahoo.
func NewMarketPriceFetchers(crypto coingecko.CoinGeckoServiceClientI, stocks yahoo.YahooServiceClientI) map[models.AssetType]PriceFetcher {
	return map[models.AssetType]PriceFetcher{
		models.AssetTypeCrypto: crypto.GetUSDPrice,
		models.AssetTypeStock:  stocks.GetRegularMarketPrice,
	}
}

// Resolve returns a cached price when fresh, otherwise fetches it.
func (s *PriceService) Resolve(ctx context.Context, assetType models.AssetType, symbol string) models.OptionalFloat {
	key := priceKeyFor(assetType, symbol)
	if price, ok := s.cache.Get(ctx, key); ok {
		return models.Some(price)
	}
	return s.fetch(ctx, key)
}

// Refresh always goes upstream and replaces the cached price on success.
func (s *PriceService) Refresh(ctx context.Context, assetType models.AssetType, symbol string) models.OptionalFloat {
	return s.fetch(ctx, priceKeyFor(assetType, symbol))
}

// PurgeExpired evicts stale prices from the cache.
func (s *PriceService) PurgeExpired(ctx context.Context) int {
	return s.cache.Purge(ctx)
}

func (s *PriceService) fetch(ctx context.Context, key models.HoldingKey) models.OptionalFloat {
	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"asset_type": key.AssetType,
		"symbol":     key.Symbol,
	})

	fetcher, ok := s.fetchers[key.AssetType]
	if !ok {
		logger.Warn("no price source for asset type")
		return models.None()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := fetcher(fetchCtx, key.Symbol)
	if err != nil {
		logger.WithError(err).Warn("price lookup failed")
		return models.None()
	}

	price := models.NormalizeFloat(raw)
	value, ok := price.Get()
	if !ok {
		logger.Warn("price source returned a non-finite price")
		return price
	}
	s.cache.Set(ctx, key, value)
	return price
}

func priceKeyFor(assetType models.AssetType, symbol string) models.HoldingKey {
	return models.HoldingKey{
		AssetType: models.AssetType(strings.ToLower(strings.TrimSpace(string(assetType)))),
		Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
	}
}
