package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"tracker/src/clients/llm"
	"tracker/src/models"
)

var errRefused = errors.New("insert refused")

type fakeAssetRepo struct {
	mu         sync.Mutex
	rows       []models.AssetTransaction
	failSymbol string
}

func (r *fakeAssetRepo) Create(_ context.Context, t *models.AssetTransaction, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSymbol != "" && t.Symbol == r.failSymbol {
		return errRefused
	}
	t.ID = len(r.rows) + 1
	r.rows = append(r.rows, *t)
	return nil
}

func (r *fakeAssetRepo) List(_ context.Context, filter models.AssetTransactionFilter) ([]models.AssetTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AssetTransaction{}
	for _, t := range r.rows {
		if filter.AssetType == "" || t.AssetType == filter.AssetType {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	rows []models.Transaction
	err  error
}

func (r *fakeTransactionRepo) Create(_ context.Context, t *models.Transaction, _ pgx.Tx) error {
	if r.err != nil {
		return r.err
	}
	t.ID = len(r.rows) + 1
	r.rows = append(r.rows, *t)
	return nil
}

func (r *fakeTransactionRepo) List(_ context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for _, t := range r.rows {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Category != "" && !strings.Contains(strings.ToLower(t.Category), strings.ToLower(filter.Category)) {
			continue
		}
		if filter.DateFrom != nil && t.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && t.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type fakeExtractor struct {
	extraction *llm.Extraction
	err        error
	today      time.Time
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, today time.Time) (*llm.Extraction, error) {
	f.today = today
	if f.err != nil {
		return nil, f.err
	}
	e := *f.extraction
	return &e, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// countingFetcher returns price (or err) and counts its calls per symbol.
type countingFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	price   float64
	err     error
	symbols []string
}

func (f *countingFetcher) Fetch(_ context.Context, symbol string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[symbol]++
	f.symbols = append(f.symbols, symbol)
	return f.price, f.err
}

func (f *countingFetcher) Calls(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

func ptr(s string) *string {
	return &s
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
