package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tracker/src/clients/llm"
	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/utils"
)

const (
	DefaultDashboardDays = 30
	MaxDashboardDays     = 3650
)

// ErrExtraction marks free text the extractor could not turn into a transaction.
var ErrExtraction = errors.New("extraction failed")

type TransactionServiceI interface {
	Create(ctx context.Context, t *models.Transaction) error
	ProcessText(ctx context.Context, text string) (*ProcessResult, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	Dashboard(ctx context.Context, days int, today time.Time) (*models.DashboardSummary, error)
}

// ProcessResult is the outcome of storing an extracted transaction.
type ProcessResult struct {
	Status    string               `json:"status"`
	ID        int                  `json:"id"`
	Extracted ExtractedTransaction `json:"extracted"`
}

type ExtractedTransaction struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type TransactionService struct {
	transactionRepository repositories.TransactionRepository
	extractor             llm.LLMServiceClientI
	now                   func() time.Time
	dashboardDays         int
}

// NewTransactionService wires the ledger store with an optional extractor.
// now defaults to time.Now and dashboardDays to DefaultDashboardDays.
func NewTransactionService(transactionRepository repositories.TransactionRepository, extractor llm.LLMServiceClientI, now func() time.Time, dashboardDays int) *TransactionService {
	if now == nil {
		now = time.Now
	}
	if dashboardDays <= 0 {
		dashboardDays = DefaultDashboardDays
	}
	return &TransactionService{
		transactionRepository: transactionRepository,
		extractor:             extractor,
		now:                   now,
		dashboardDays:         dashboardDays,
	}
}

func (s *TransactionService) Create(ctx context.Context, t *models.Transaction) error {
	t.Type = models.TransactionType(strings.ToLower(strings.TrimSpace(string(t.Type))))
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
	if !t.Date.IsZero() {
		t.Date = utils.TruncateDay(t.Date)
	}
	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.transactionRepository.Create(ctx, t, nil); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Error("failed to store transaction")
		return err
	}
	return nil
}

// ProcessText extracts a transaction from free text and stores it. A missing
// date defaults to today.
func (s *TransactionService) ProcessText(ctx context.Context, text string) (*ProcessResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", models.ErrValidation)
	}
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no extractor configured", ErrExtraction)
	}

	today := utils.TruncateDay(s.now())
	extraction, err := s.extractor.Extract(ctx, text, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if extraction.Date == nil || strings.TrimSpace(*extraction.Date) == "" {
		d := today.Format(utils.ShortDashDateLayout)
		extraction.Date = &d
	}
	txType, ok := models.ParseTransactionType(deref(extraction.Type))
	if !ok {
		return nil, fmt.Errorf("%w: Invalid type: %s", ErrExtraction, deref(extraction.Type))
	}
	for _, field := range []struct {
		key     string
		present bool
	}{
		{"category", extraction.Category != nil},
		{"description", extraction.Description != nil},
		{"price", extraction.Price.Valid()},
	} {
		if !field.present {
			return nil, fmt.Errorf("%w: Missing key from LLM output: %s", ErrExtraction, field.key)
		}
	}

	date, err := utils.ParseDate(*extraction.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	t := &models.Transaction{
		Date:        date,
		Type:        txType,
		Category:    *extraction.Category,
		Description: *extraction.Description,
		Price:       extraction.Price.Or(0),
	}
	if err := s.Create(ctx, t); err != nil {
		return nil, err
	}

	return &ProcessResult{
		Status: "success",
		ID:     t.ID,
		Extracted: ExtractedTransaction{
			Date:        t.Date.Format(utils.ShortDashDateLayout),
			Type:        string(t.Type),
			Category:    t.Category,
			Description: t.Description,
			Price:       t.Price,
		},
	}, nil
}

// List returns the matching transactions, newest first.
func (s *TransactionService) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.Type != "" {
		txType, ok := models.ParseTransactionType(string(filter.Type))
		if !ok {
			return nil, fmt.Errorf("%w: invalid type: %s", models.ErrValidation, filter.Type)
		}
		filter.Type = txType
	}
	filter.Category = strings.TrimSpace(filter.Category)
	return s.transactionRepository.List(ctx, filter)
}

// Dashboard summarizes the ledger from today-days through today inclusive.
// days <= 0 uses the configured lookback.
func (s *TransactionService) Dashboard(ctx context.Context, days int, today time.Time) (*models.DashboardSummary, error) {
	if days <= 0 {
		days = s.dashboardDays
	}
	if days > MaxDashboardDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", models.ErrValidation, MaxDashboardDays)
	}

	to := utils.TruncateDay(today)
	from := to.AddDate(0, 0, -days)
	txs, err := s.transactionRepository.List(ctx, models.TransactionFilter{DateFrom: &from, DateTo: &to})
	if err != nil {
		return nil, err
	}
	return Summarize(txs, from, to), nil
}

// Summarize computes income, expense and net totals, the expense split by
// category (largest first) and the net of every day that has entries.
func Summarize(txs []models.Transaction, from, to time.Time) *models.DashboardSummary {
	summary := &models.DashboardSummary{DateFrom: from, DateTo: to}
	byCategory := make(map[string]float64)
	byDay := make(map[string]float64)

	for _, t := range txs {
		day := t.Date.Format(utils.ShortDashDateLayout)
		switch t.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome += t.Price
			byDay[day] += t.Price
		case models.TransactionTypeExpense:
			summary.TotalExpense += t.Price
			byCategory[t.Category] += t.Price
			byDay[day] -= t.Price
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense

	summary.ExpenseByCategory = make([]models.SeriesPoint, 0, len(byCategory))
	for category, total := range byCategory {
		summary.ExpenseByCategory = append(summary.ExpenseByCategory, models.SeriesPoint{Label: category, Value: total})
	}
	sort.Slice(summary.ExpenseByCategory, func(i, j int) bool {
		a, b := summary.ExpenseByCategory[i], summary.ExpenseByCategory[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Label < b.Label
	})

	summary.DailyNet = make([]models.SeriesPoint, 0, len(byDay))
	for day, net := range byDay {
		summary.DailyNet = append(summary.DailyNet, models.SeriesPoint{Label: day, Value: net})
	}
	sort.Slice(summary.DailyNet, func(i, j int) bool {
		return summary.DailyNet[i].Label < summary.DailyNet[j].Label
	})
	return summary
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
