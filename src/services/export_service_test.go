package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/src/models"
	"tracker/src/utils"
)

func testValuation() *models.PortfolioValuation {
	return &models.PortfolioValuation{
		Holdings: []models.ValuedHolding{
			{
				Holding:      models.Holding{AssetType: models.AssetTypeCrypto, Symbol: "BTC", NetQuantity: 0.5, AvgBuyPrice: 42000.123},
				CurrentPrice: models.None(),
				CurrentValue: models.None(),
				CostBasis:    models.Some(21000.0615),
				GainLoss:     models.None(),
				GainLossPct:  models.None(),
				WeightPct:    models.None(),
			},
			{
				Holding:      models.Holding{AssetType: models.AssetTypeStock, Symbol: "AAPL", Name: ptr("Apple"), NetQuantity: 15, AvgBuyPrice: 150},
				CurrentPrice: models.Some(200),
				CurrentValue: models.Some(3000),
				CostBasis:    models.Some(2250),
				GainLoss:     models.Some(750),
				GainLossPct:  models.Some(1.0 / 3.0),
				WeightPct:    models.Some(1),
			},
		},
	}
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]string{"": "csv", "csv": "csv", " XLSX ": "xlsx"} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseExportFormat("pdf")
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.Equal(t, "text/csv", ContentType(utils.FormatCSV))
	assert.Contains(t, ContentType(utils.FormatXLSX), "spreadsheetml")
}

func TestWriteValuationCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportService().WriteValuation(&buf, utils.FormatCSV, testValuation()))

	assert.Equal(t,
		"asset_type,symbol,name,net_quantity,avg_buy_price,current_price,current_value,cost_basis,gain_loss,gain_loss_pct,weight_pct\n"+
			"crypto,BTC,,0.5,42000.12,,,21000.06,,,\n"+
			"stock,AAPL,Apple,15,150,200,3000,2250,750,0.3333,1\n",
		buf.String())
}

func TestWriteValuationXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportService().WriteValuation(&buf, utils.FormatXLSX, testValuation()))

	table, err := utils.ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "BTC", table.Value(0, "symbol"))
	assert.Equal(t, "", table.Value(0, "current_price"))
	assert.Equal(t, "AAPL", table.Value(1, "symbol"))
	assert.Equal(t, "150", table.Value(1, "avg_buy_price"))
	assert.Equal(t, "0.3333", table.Value(1, "gain_loss_pct"))
}

func TestWriteTransactionsCSV(t *testing.T) {
	txs := []models.Transaction{
		{ID: 7, Date: day("2024-03-05"), Type: models.TransactionTypeExpense, Category: "food", Description: "lunch", Price: 12.499},
	}
	var buf bytes.Buffer
	require.NoError(t, NewExportService().WriteTransactions(&buf, utils.FormatCSV, txs))

	assert.Equal(t, "id,date,type,category,description,price\n7,2024-03-05,expense,food,lunch,12.5\n", buf.String())
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewExportService().WriteTransactions(&buf, "pdf", nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}
