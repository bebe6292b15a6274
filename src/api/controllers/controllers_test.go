package controllers

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/src/config"
	"tracker/src/models"
	"tracker/src/schemas"
	"tracker/src/services"
)

type fakePortfolioService struct {
	added  []models.AssetTransaction
	topN   int
	report *models.PortfolioReport
}

func (f *fakePortfolioService) AddAssetTransaction(_ context.Context, t *models.AssetTransaction) error {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	t.ID = len(f.added) + 1
	f.added = append(f.added, *t)
	return nil
}

func (f *fakePortfolioService) ListAssetTransactions(_ context.Context, _ models.AssetTransactionFilter) ([]models.AssetTransaction, error) {
	return f.added, nil
}

func (f *fakePortfolioService) Holdings(_ context.Context, _ models.AssetTransactionFilter) ([]models.Holding, error) {
	return nil, nil
}

func (f *fakePortfolioService) Valuation(_ context.Context, _ models.AssetTransactionFilter, topN int) (*models.PortfolioReport, error) {
	f.topN = topN
	return f.report, nil
}

func (f *fakePortfolioService) RefreshPrices(_ context.Context) (*services.RefreshResult, error) {
	return &services.RefreshResult{}, nil
}

type fakeTransactionService struct {
	services.TransactionServiceI
	today time.Time
}

func (f *fakeTransactionService) Dashboard(_ context.Context, days int, today time.Time) (*models.DashboardSummary, error) {
	f.today = today
	return &models.DashboardSummary{DateFrom: today.AddDate(0, 0, -days), DateTo: today}, nil
}

func newTestController(portfolio *fakePortfolioService) *Controller {
	return NewController(
		&fakeTransactionService{},
		portfolio,
		services.NewImportService(portfolio, config.DefaultColumnMap),
		services.NewExportService(),
	)
}

const upload = "date,asset_type,symbol,price,quantity,action\n" +
	"2024-01-02,stock,aapl,150,10,buy\n" +
	"2024-01-03,stock,msft,300,0,buy\n"

func TestImportAssetTransactionsDryRun(t *testing.T) {
	portfolio := &fakePortfolioService{}
	c := newTestController(portfolio)

	res, err := c.ImportAssetTransactions(context.Background(), "trades.csv", strings.NewReader(upload), true)
	require.NoError(t, err)

	preview, ok := res.(*schemas.ImportPreviewResponse)
	require.True(t, ok)
	assert.Equal(t, 1, preview.ValidCount)
	assert.Equal(t, "AAPL", preview.Valid[0].Transaction.Symbol)
	assert.Equal(t, []schemas.ImportRowError{{Row: 2, Message: "Invalid quantity"}}, preview.Invalid)
	assert.Empty(t, portfolio.added)
}

func TestImportAssetTransactionsSubmit(t *testing.T) {
	portfolio := &fakePortfolioService{}
	c := newTestController(portfolio)

	res, err := c.ImportAssetTransactions(context.Background(), "trades.csv", strings.NewReader(upload), false)
	require.NoError(t, err)

	result, ok := res.(*schemas.ImportResponse)
	require.True(t, ok)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Invalid, 1)
	require.Len(t, portfolio.added, 1)
	assert.Equal(t, result.BatchID, *portfolio.added[0].BatchID)
}

func TestImportAssetTransactionsMissingColumns(t *testing.T) {
	c := newTestController(&fakePortfolioService{})

	_, err := c.ImportAssetTransactions(context.Background(), "trades.csv", strings.NewReader("date,symbol\n2024-01-02,AAPL\n"), true)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetPortfolioClampsTop(t *testing.T) {
	portfolio := &fakePortfolioService{report: &models.PortfolioReport{Valuation: &models.PortfolioValuation{}}}
	c := newTestController(portfolio)

	for top, want := range map[int]int{0: 10, 1: 3, 12: 12, 100: 30} {
		_, err := c.GetPortfolio(context.Background(), "", top)
		require.NoError(t, err)
		assert.Equal(t, want, portfolio.topN)
	}
}

func TestExportPortfolio(t *testing.T) {
	portfolio := &fakePortfolioService{report: &models.PortfolioReport{Valuation: &models.PortfolioValuation{
		Holdings: []models.ValuedHolding{{
			Holding:      models.Holding{AssetType: models.AssetTypeStock, Symbol: "AAPL", NetQuantity: 2, AvgBuyPrice: 100},
			CurrentPrice: models.None(),
		}},
	}}}
	c := newTestController(portfolio)

	var buf bytes.Buffer
	require.NoError(t, c.ExportPortfolio(context.Background(), &buf, "csv", ""))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "stock,AAPL,,2,100,,,,,,", lines[1])
}

func TestGetDashboardUsesClock(t *testing.T) {
	transactions := &fakeTransactionService{}
	c := NewController(transactions, &fakePortfolioService{}, nil, nil)
	c.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	res, err := c.GetDashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-24", res.DateFrom.Format("2006-01-02"))
	assert.Equal(t, 2024, transactions.today.Year())
}
