package repositories

import (
	"context"

	"tracker/src/models"
	"tracker/src/portfolio"
)

// HoldingRepository derives positions from the asset ledger on every call.
type HoldingRepository interface {
	List(ctx context.Context, filter models.AssetTransactionFilter) ([]models.Holding, error)
}

type holdingRepo struct {
	assetTransactions AssetTransactionRepository
}

func NewHoldingRepository(assetTransactions AssetTransactionRepository) HoldingRepository {
	return &holdingRepo{assetTransactions: assetTransactions}
}

func (r *holdingRepo) List(ctx context.Context, filter models.AssetTransactionFilter) ([]models.Holding, error) {
	txs, err := r.assetTransactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return portfolio.Aggregate(txs), nil
}
