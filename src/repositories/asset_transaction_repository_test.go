package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/src/database/dbtest"
	"tracker/src/models"
	"tracker/src/repositories"
)

func TestAssetTransactionAndHoldingRepositories(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	dbtest.TruncateTables(t, db, "asset_transactions")
	defer dbtest.TruncateTables(t, db, "asset_transactions")

	assets := repositories.NewAssetTransactionRepository(db)
	holdings := repositories.NewHoldingRepository(assets)
	ctx := context.Background()

	name := "Apple Inc."
	seed := []models.AssetTransaction{
		{Date: day("2024-01-02"), AssetType: models.AssetTypeStock, Symbol: "AAPL", Name: &name, Quantity: 10, Price: 100, Action: models.ActionBuy},
		{Date: day("2024-01-03"), AssetType: models.AssetTypeStock, Symbol: "AAPL", Quantity: 5, Price: 120, Action: models.ActionBuy},
		{Date: day("2024-01-04"), AssetType: models.AssetTypeStock, Symbol: "AAPL", Quantity: 8, Price: 150, Action: models.ActionSell},
		{Date: day("2024-01-04"), AssetType: models.AssetTypeCrypto, Symbol: "BTC", Quantity: 0.5, Price: 40000, Action: models.ActionBuy},
		{Date: day("2024-01-05"), AssetType: models.AssetTypeCrypto, Symbol: "ETH", Quantity: 1, Price: 2000, Action: models.ActionBuy},
		{Date: day("2024-01-06"), AssetType: models.AssetTypeCrypto, Symbol: "ETH", Quantity: 1, Price: 2500, Action: models.ActionSell},
	}
	for i := range seed {
		require.NoError(t, assets.Create(ctx, &seed[i], nil))
	}

	t.Run("ledger is ordered newest first", func(t *testing.T) {
		got, err := assets.List(ctx, models.AssetTransactionFilter{})
		require.NoError(t, err)
		require.Len(t, got, len(seed))
		assert.Equal(t, "ETH", got[0].Symbol)
		assert.Equal(t, models.ActionSell, got[0].Action)
		// same date: higher id first
		assert.Equal(t, "BTC", got[2].Symbol)
		assert.Equal(t, "AAPL", got[3].Symbol)
	})

	t.Run("asset type filter", func(t *testing.T) {
		got, err := assets.List(ctx, models.AssetTransactionFilter{AssetType: models.AssetTypeStock})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("holdings drop liquidated positions", func(t *testing.T) {
		got, err := holdings.List(ctx, models.AssetTransactionFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "BTC", got[0].Symbol)
		assert.Equal(t, "AAPL", got[1].Symbol)
		assert.InDelta(t, 7, got[1].NetQuantity, 1e-9)
		assert.InDelta(t, 1600.0/15.0, got[1].AvgBuyPrice, 1e-9)
		require.NotNil(t, got[1].Name)
		assert.Equal(t, "Apple Inc.", *got[1].Name)
	})
}
