package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return t, true
	}
	return t, false
}

// Transaction is an income or expense entry of the cash ledger.
type Transaction struct {
	ID          int             `db:"id"`
	Date        time.Time       `db:"date"`
	Type        TransactionType `db:"type"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Price       float64         `db:"price"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, ok := ParseTransactionType(string(t.Type)); !ok {
		return fmt.Errorf("%w: invalid type: %s", ErrValidation, t.Type)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) || t.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}
	return nil
}

// TransactionFilter narrows a transaction query. Zero fields do not filter.
// Date bounds are inclusive.
type TransactionFilter struct {
	Type     TransactionType
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

// DashboardSummary aggregates the ledger over a lookback window.
type DashboardSummary struct {
	DateFrom          time.Time
	DateTo            time.Time
	TotalIncome       float64
	TotalExpense      float64
	Net               float64
	ExpenseByCategory []SeriesPoint
	DailyNet          []SeriesPoint
}
