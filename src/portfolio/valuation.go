package portfolio

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"

	"tracker/src/models"
)

// PriceResolver returns the current unit price of a symbol, or an absent value
// when it cannot be determined. It must not block past its own timeout.
type PriceResolver interface {
	Resolve(ctx context.Context, assetType models.AssetType, symbol string) models.OptionalFloat
}

// ResolvePrices looks up each distinct key of holdings once, in parallel.
func ResolvePrices(ctx context.Context, holdings []models.Holding, resolver PriceResolver) map[models.HoldingKey]models.OptionalFloat {
	prices := make(map[models.HoldingKey]models.OptionalFloat, len(holdings))
	var mu sync.Mutex
	var wg conc.WaitGroup

	seen := make(map[models.HoldingKey]bool, len(holdings))
	for _, h := range holdings {
		key := h.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		wg.Go(func() {
			price := resolver.Resolve(ctx, key.AssetType, key.Symbol)
			mu.Lock()
			prices[key] = price
			mu.Unlock()
		})
	}
	wg.Wait()
	return prices
}

// Value prices the holdings with resolver and computes the valuation.
func Value(ctx context.Context, holdings []models.Holding, resolver PriceResolver) *models.PortfolioValuation {
	return Valuate(holdings, ResolvePrices(ctx, holdings, resolver))
}

// Valuate computes per-row market value, cost basis, gain/loss and weight from
// already resolved prices. Missing prices leave the market-dependent figures
// absent; weights are shares of the priced rows' total only.
func Valuate(holdings []models.Holding, prices map[models.HoldingKey]models.OptionalFloat) *models.PortfolioValuation {
	rows := make([]models.ValuedHolding, len(holdings))
	currentValues := make([]models.OptionalFloat, len(holdings))
	costBases := make([]models.OptionalFloat, len(holdings))
	gains := make([]models.OptionalFloat, len(holdings))

	for i, h := range holdings {
		quantity := models.Some(h.NetQuantity)
		price := prices[h.Key()]

		currentValues[i] = multiply(quantity, price)
		costBases[i] = multiply(quantity, models.Some(h.AvgBuyPrice))
		gains[i] = subtract(currentValues[i], costBases[i])

		rows[i] = models.ValuedHolding{
			Holding:      h,
			CurrentPrice: price,
			CurrentValue: currentValues[i],
			CostBasis:    costBases[i],
			GainLoss:     gains[i],
		}
	}

	gainPcts := divideEach(gains, costBases)
	totalCurrentValue := sum(currentValues)
	weights := divideBy(currentValues, models.Some(totalCurrentValue))

	valuation := &models.PortfolioValuation{
		Holdings:          rows,
		TotalCostBasis:    sum(costBases),
		TotalCurrentValue: totalCurrentValue,
		TotalGainLoss:     sum(gains),
	}
	for i := range rows {
		rows[i].GainLossPct = gainPcts[i]
		rows[i].WeightPct = weights[i]
		if !rows[i].CurrentPrice.Valid() {
			valuation.UnpricedCount++
		}
	}
	return valuation
}
