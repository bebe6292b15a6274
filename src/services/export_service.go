package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"tracker/src/models"
	"tracker/src/utils"
)

const (
	moneyPlaces = 2
	ratioPlaces = 4
)

var valuationColumns = []string{
	"asset_type", "symbol", "name", "net_quantity", "avg_buy_price", "current_price",
	"current_value", "cost_basis", "gain_loss", "gain_loss_pct", "weight_pct",
}

var transactionColumns = []string{"id", "date", "type", "category", "description", "price"}

type ExportServiceI interface {
	WriteValuation(w io.Writer, format string, valuation *models.PortfolioValuation) error
	WriteTransactions(w io.Writer, format string, txs []models.Transaction) error
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ParseExportFormat accepts csv (the default) or xlsx.
func ParseExportFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", utils.FormatCSV:
		return utils.FormatCSV, nil
	case utils.FormatXLSX:
		return utils.FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: format must be csv/xlsx", models.ErrValidation)
	}
}

// ContentType is the MIME type of an export format.
func ContentType(format string) string {
	if format == utils.FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// cell is one exported value: a string, a rounded number, or empty.
type cell struct {
	text   string
	number decimal.Decimal
	isNum  bool
}

func textCell(s string) cell { return cell{text: s} }

func numberCell(v float64, places int32) cell {
	return cell{number: decimal.NewFromFloat(v).Round(places), isNum: true}
}

func optionalNumberCell(v models.OptionalFloat, places int32) cell {
	x, ok := v.Get()
	if !ok {
		return cell{}
	}
	return numberCell(x, places)
}

func (c cell) String() string {
	if c.isNum {
		return c.number.String()
	}
	return c.text
}

func (c cell) Value() any {
	if c.isNum {
		return c.number.InexactFloat64()
	}
	return c.text
}

func (s *ExportService) WriteValuation(w io.Writer, format string, valuation *models.PortfolioValuation) error {
	rows := make([][]cell, 0, len(valuation.Holdings))
	for _, h := range valuation.Holdings {
		name := ""
		if h.Name != nil {
			name = *h.Name
		}
		rows = append(rows, []cell{
			textCell(string(h.AssetType)),
			textCell(h.Symbol),
			textCell(name),
			{number: decimal.NewFromFloat(h.NetQuantity), isNum: true},
			numberCell(h.AvgBuyPrice, moneyPlaces),
			optionalNumberCell(h.CurrentPrice, moneyPlaces),
			optionalNumberCell(h.CurrentValue, moneyPlaces),
			optionalNumberCell(h.CostBasis, moneyPlaces),
			optionalNumberCell(h.GainLoss, moneyPlaces),
			optionalNumberCell(h.GainLossPct, ratioPlaces),
			optionalNumberCell(h.WeightPct, ratioPlaces),
		})
	}
	return s.write(w, format, "Holdings", valuationColumns, rows)
}

func (s *ExportService) WriteTransactions(w io.Writer, format string, txs []models.Transaction) error {
	rows := make([][]cell, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []cell{
			{number: decimal.NewFromInt(int64(t.ID)), isNum: true},
			textCell(t.Date.Format(utils.ShortDashDateLayout)),
			textCell(string(t.Type)),
			textCell(t.Category),
			textCell(t.Description),
			numberCell(t.Price, moneyPlaces),
		})
	}
	return s.write(w, format, "Transactions", transactionColumns, rows)
}

func (s *ExportService) write(w io.Writer, format, sheet string, columns []string, rows [][]cell) error {
	switch format {
	case utils.FormatXLSX:
		values := make([][]any, len(rows))
		for i, r := range rows {
			values[i] = make([]any, len(r))
			for j, c := range r {
				values[i][j] = c.Value()
			}
		}
		return utils.WriteXLSX(w, sheet, columns, values)
	case utils.FormatCSV:
		records := make([][]string, len(rows))
		for i, r := range rows {
			records[i] = make([]string, len(r))
			for j, c := range r {
				records[i][j] = c.String()
			}
		}
		return utils.WriteDataFrameCSV(w, utils.NewStringDataFrame(columns, records))
	default:
		return fmt.Errorf("%w: format must be csv/xlsx", models.ErrValidation)
	}
}
