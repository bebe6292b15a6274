package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"tracker/src/models"
	"tracker/src/portfolio"
	"tracker/src/repositories"
	"tracker/src/utils"
)

const refreshConcurrency = 8

type PortfolioServiceI interface {
	AddAssetTransaction(ctx context.Context, t *models.AssetTransaction) error
	ListAssetTransactions(ctx context.Context, filter models.AssetTransactionFilter) ([]models.AssetTransaction, error)
	Holdings(ctx context.Context, filter models.AssetTransactionFilter) ([]models.Holding, error)
	Valuation(ctx context.Context, filter models.AssetTransactionFilter, topN int) (*models.PortfolioReport, error)
	RefreshPrices(ctx context.Context) (*RefreshResult, error)
}

// RefreshResult counts the held keys whose price could and could not be
// refreshed, and the stale cache entries dropped beforehand.
type RefreshResult struct {
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Purged     int `json:"purged"`
}

type PortfolioService struct {
	assetTransactionRepository repositories.AssetTransactionRepository
	holdingRepository          repositories.HoldingRepository
	prices                     PriceServiceI
}

func NewPortfolioService(assetTransactionRepository repositories.AssetTransactionRepository, holdingRepository repositories.HoldingRepository, prices PriceServiceI) *PortfolioService {
	return &PortfolioService{
		assetTransactionRepository: assetTransactionRepository,
		holdingRepository:          holdingRepository,
		prices:                     prices,
	}
}

// AddAssetTransaction normalizes, validates and stores one ledger entry.
func (s *PortfolioService) AddAssetTransaction(ctx context.Context, t *models.AssetTransaction) error {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.assetTransactionRepository.Create(ctx, t, nil); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("symbol", t.Symbol).Error("failed to store asset transaction")
		return err
	}
	return nil
}

func (s *PortfolioService) ListAssetTransactions(ctx context.Context, filter models.AssetTransactionFilter) ([]models.AssetTransaction, error) {
	if err := validateAssetFilter(&filter); err != nil {
		return nil, err
	}
	return s.assetTransactionRepository.List(ctx, filter)
}

func (s *PortfolioService) Holdings(ctx context.Context, filter models.AssetTransactionFilter) ([]models.Holding, error) {
	if err := validateAssetFilter(&filter); err != nil {
		return nil, err
	}
	return s.holdingRepository.List(ctx, filter)
}

// Valuation prices the current holdings and derives the chart series.
func (s *PortfolioService) Valuation(ctx context.Context, filter models.AssetTransactionFilter, topN int) (*models.PortfolioReport, error) {
	holdings, err := s.Holdings(ctx, filter)
	if err != nil {
		return nil, err
	}

	valuation := portfolio.Value(ctx, holdings, s.prices)
	if valuation.UnpricedCount > 0 {
		utils.LoggerFromContext(ctx).WithField("unpriced", valuation.UnpricedCount).Info("valuation has holdings without a current price")
	}

	return &models.PortfolioReport{
		Valuation:             valuation,
		AllocationBySymbol:    portfolio.AllocationBySymbol(valuation.Holdings),
		AllocationByAssetType: portfolio.AllocationByAssetType(valuation.Holdings),
		GainLossBySymbol:      portfolio.GainLossBySymbol(valuation.Holdings),
		TopWeights:            portfolio.TopWeights(valuation.Holdings, topN),
	}, nil
}

// RefreshPrices evicts expired cache entries, then fetches a fresh price for
// every held key.
func (s *PortfolioService) RefreshPrices(ctx context.Context) (*RefreshResult, error) {
	purged := s.prices.PurgeExpired(ctx)

	holdings, err := s.holdingRepository.List(ctx, models.AssetTransactionFilter{})
	if err != nil {
		return nil, err
	}

	var resolved, unresolved atomic.Int64
	p := pool.New().WithMaxGoroutines(refreshConcurrency)
	for _, h := range holdings {
		p.Go(func() {
			if s.prices.Refresh(ctx, h.AssetType, h.Symbol).Valid() {
				resolved.Add(1)
			} else {
				unresolved.Add(1)
			}
		})
	}
	p.Wait()

	return &RefreshResult{Resolved: int(resolved.Load()), Unresolved: int(unresolved.Load()), Purged: purged}, nil
}

func validateAssetFilter(filter *models.AssetTransactionFilter) error {
	if filter.AssetType == "" {
		return nil
	}
	assetType, ok := models.ParseAssetType(string(filter.AssetType))
	if !ok {
		return fmt.Errorf("%w: asset_type must be stock/crypto", models.ErrValidation)
	}
	filter.AssetType = assetType
	return nil
}
