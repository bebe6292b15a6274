package portfolio

import (
	"sort"
	"time"

	"tracker/src/models"
)

// a net quantity within this fraction of the bought quantity is float
// residue from selling everything, not a position
const liquidationTolerance = 1e-9

type accumulator struct {
	holding  models.Holding
	nameDate time.Time
	nameID   int
	named    bool
}

// Aggregate folds an asset ledger into one Holding per (asset_type, symbol).
// Net quantity is the signed sum of quantities, the average buy price only
// looks at buys, and liquidated positions are dropped (see liquidated). The
// holding name is taken from the most recent transaction that carries one.
// The result is ordered by asset type, then symbol.
func Aggregate(txs []models.AssetTransaction) []models.Holding {
	groups := make(map[models.HoldingKey]*accumulator)
	for i := range txs {
		tx := &txs[i]
		key := tx.Key()
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{holding: models.Holding{AssetType: key.AssetType, Symbol: key.Symbol}}
			groups[key] = acc
		}

		acc.holding.NetQuantity += tx.SignedQuantity()
		if tx.Action == models.ActionBuy {
			acc.holding.TotalBuyQuantity += tx.Quantity
			acc.holding.TotalBuyCost += tx.Quantity * tx.Price
		}
		if tx.Name != nil && *tx.Name != "" && acc.newerName(tx) {
			name := *tx.Name
			acc.holding.Name = &name
			acc.nameDate = tx.Date
			acc.nameID = tx.ID
			acc.named = true
		}
	}

	holdings := make([]models.Holding, 0, len(groups))
	for _, acc := range groups {
		h := acc.holding
		if h.TotalBuyQuantity > 0 {
			h.AvgBuyPrice = h.TotalBuyCost / h.TotalBuyQuantity
		}
		if liquidated(h) {
			continue
		}
		holdings = append(holdings, h)
	}

	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].AssetType != holdings[j].AssetType {
			return holdings[i].AssetType < holdings[j].AssetType
		}
		return holdings[i].Symbol < holdings[j].Symbol
	})
	return holdings
}

// liquidated reports whether a holding has nothing left. Any positive net
// quantity counts, however small, unless it is below the rounding error of
// the quantities bought for that key.
func liquidated(h models.Holding) bool {
	return h.NetQuantity <= h.TotalBuyQuantity*liquidationTolerance
}

func (a *accumulator) newerName(tx *models.AssetTransaction) bool {
	if !a.named {
		return true
	}
	if tx.Date.Equal(a.nameDate) {
		return tx.ID > a.nameID
	}
	return tx.Date.After(a.nameDate)
}

// FilterByAssetType keeps the holdings of one asset type. A zero type keeps all.
func FilterByAssetType(holdings []models.Holding, assetType models.AssetType) []models.Holding {
	if assetType == "" {
		return holdings
	}
	out := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.AssetType == assetType {
			out = append(out, h)
		}
	}
	return out
}
