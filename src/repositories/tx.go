package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// withTx runs fn inside tx, or inside a new transaction committed on success
// when tx is nil.
func withTx(ctx context.Context, db *pgxpool.Pool, tx pgx.Tx, fn func(pgx.Tx) error) (err error) {
	if tx != nil {
		return fn(tx)
	}

	tx, err = db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
