package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tracker/src/models"
)

type AssetTransactionRepository interface {
	Create(ctx context.Context, t *models.AssetTransaction, tx pgx.Tx) error
	List(ctx context.Context, filter models.AssetTransactionFilter) ([]models.AssetTransaction, error)
}

type assetTransactionRepo struct {
	db *pgxpool.Pool
}

func NewAssetTransactionRepository(db *pgxpool.Pool) AssetTransactionRepository {
	return &assetTransactionRepo{db: db}
}

func (r *assetTransactionRepo) Create(ctx context.Context, t *models.AssetTransaction, tx pgx.Tx) error {
	query := `
		INSERT INTO asset_transactions (date, asset_type, symbol, name, quantity, price, action, remarks, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	return withTx(ctx, r.db, tx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			t.Date, t.AssetType, t.Symbol, t.Name, t.Quantity, t.Price, t.Action, t.Remarks, t.BatchID,
		).Scan(&t.ID, &t.CreatedAt)
	})
}

// List returns the asset ledger, newest first.
func (r *assetTransactionRepo) List(ctx context.Context, filter models.AssetTransactionFilter) ([]models.AssetTransaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date, asset_type, symbol, name, quantity, price, action, remarks, batch_id, created_at
		FROM asset_transactions
		WHERE ($1 = '' OR asset_type = $1)
		ORDER BY date DESC, id DESC`,
		string(filter.AssetType))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.AssetTransaction])
}
