package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tracker/src/models"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	query := `
		INSERT INTO transactions (date, type, category, description, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return withTx(ctx, r.db, tx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			t.Date, t.Type, t.Category, t.Description, t.Price,
		).Scan(&t.ID, &t.CreatedAt)
	})
}

// List returns the transactions matching filter, newest first.
func (r *transactionRepo) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != "" {
		where = append(where, "type = "+arg(filter.Type))
	}
	if filter.Category != "" {
		where = append(where, "category ILIKE "+arg("%"+escapeLike(filter.Category)+"%"))
	}
	if filter.DateFrom != nil {
		where = append(where, "date >= "+arg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		where = append(where, "date <= "+arg(*filter.DateTo))
	}

	query := `SELECT id, date, type, category, description, price, created_at FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
}

// escapeLike makes a user substring literal inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
