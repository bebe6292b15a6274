package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ParseAssetType lower-cases s and reports whether it names a known asset type.
func ParseAssetType(s string) (AssetType, bool) {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case AssetTypeStock, AssetTypeCrypto:
		return t, true
	}
	return t, false
}

// ParseAction lower-cases s and reports whether it names a known action.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionBuy, ActionSell:
		return a, true
	}
	return a, false
}

// AssetTransaction is a single buy or sell of a tradable asset. Rows are never
// updated once stored.
type AssetTransaction struct {
	ID        int       `db:"id"`
	Date      time.Time `db:"date"`
	AssetType AssetType `db:"asset_type"`
	Symbol    string    `db:"symbol"`
	Name      *string   `db:"name"`
	Quantity  float64   `db:"quantity"`
	Price     float64   `db:"price"`
	Action    Action    `db:"action"`
	Remarks   *string   `db:"remarks"`
	BatchID   *string   `db:"batch_id"`
	CreatedAt time.Time `db:"created_at"`
}

// SignedQuantity is +quantity for buys and -quantity for sells.
func (t *AssetTransaction) SignedQuantity() float64 {
	if t.Action == ActionSell {
		return -t.Quantity
	}
	return t.Quantity
}

func (t *AssetTransaction) Key() HoldingKey {
	return HoldingKey{AssetType: t.AssetType, Symbol: t.Symbol}
}

// Normalize canonicalizes the free-form fields before validation and insert.
func (t *AssetTransaction) Normalize() {
	t.AssetType = AssetType(strings.ToLower(strings.TrimSpace(string(t.AssetType))))
	t.Action = Action(strings.ToLower(strings.TrimSpace(string(t.Action))))
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	t.Name = trimOptional(t.Name)
	t.Remarks = trimOptional(t.Remarks)
	if !t.Date.IsZero() {
		y, m, d := t.Date.Date()
		t.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

func (t *AssetTransaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, ok := ParseAssetType(string(t.AssetType)); !ok {
		return fmt.Errorf("%w: asset_type must be stock/crypto", ErrValidation)
	}
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if _, ok := ParseAction(string(t.Action)); !ok {
		return fmt.Errorf("%w: action must be buy/sell", ErrValidation)
	}
	if !isPositive(t.Quantity) {
		return fmt.Errorf("%w: quantity must be a positive number", ErrValidation)
	}
	if !isPositive(t.Price) {
		return fmt.Errorf("%w: price must be a positive number", ErrValidation)
	}
	return nil
}

// AssetTransactionFilter selects asset transactions. A zero AssetType selects all.
type AssetTransactionFilter struct {
	AssetType AssetType
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
