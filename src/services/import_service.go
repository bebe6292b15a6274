package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tracker/src/models"
	"tracker/src/utils"
)

// columns an import file must carry after renaming; name and remarks are optional
var requiredImportColumns = []string{"date", "asset_type", "symbol", "price", "quantity", "action"}

type ImportServiceI interface {
	ReadTable(filename string, reader io.Reader) (*utils.Table, error)
	Validate(table *utils.Table) (*ImportPreview, error)
	Submit(ctx context.Context, preview *ImportPreview) *ImportResult
}

// ImportRow is a row that passed validation, with its source row number.
type ImportRow struct {
	Row         int
	Transaction models.AssetTransaction
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ImportPreview partitions an uploaded table into admissible and rejected rows.
type ImportPreview struct {
	Valid   []ImportRow
	Invalid []RowError
}

// ImportResult reports a submitted batch. Errors holds one "Row N: reason"
// entry per row the store refused.
type ImportResult struct {
	BatchID      string   `json:"batch_id"`
	SuccessCount int      `json:"success_count"`
	Errors       []string `json:"errors"`
}

type ImportService struct {
	portfolioService PortfolioServiceI
	columnMap        map[string]string
	newBatchID       func() string
}

func NewImportService(portfolioService PortfolioServiceI, columnMap map[string]string) *ImportService {
	return &ImportService{
		portfolioService: portfolioService,
		columnMap:        columnMap,
		newBatchID:       uuid.NewString,
	}
}

// ReadTable parses an uploaded .csv or .xlsx file.
func (s *ImportService) ReadTable(filename string, reader io.Reader) (*utils.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return utils.ReadCSV(reader)
	case ".xlsx":
		return utils.ReadXLSX(reader)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q, expected .csv or .xlsx", models.ErrValidation, ext)
	}
}

// Validate renames the columns, checks the required ones exist and validates
// every row on its own.
func (s *ImportService) Validate(table *utils.Table) (*ImportPreview, error) {
	table = table.Rename(s.columnMap)
	for _, column := range requiredImportColumns {
		if !table.Has(column) {
			return nil, fmt.Errorf("%w: File must have columns: %s (name and remarks optional)",
				models.ErrValidation, strings.Join(requiredImportColumns, ", "))
		}
	}

	preview := &ImportPreview{Valid: []ImportRow{}, Invalid: []RowError{}}
	for i := range table.Rows {
		line := table.Line(i)
		tx, reason := parseImportRow(table, i)
		if reason != "" {
			preview.Invalid = append(preview.Invalid, RowError{Row: line, Message: reason})
			continue
		}
		preview.Valid = append(preview.Valid, ImportRow{Row: line, Transaction: tx})
	}
	return preview, nil
}

// Submit stores the valid rows one at a time. A failing row is reported and
// does not stop the rows after it.
func (s *ImportService) Submit(ctx context.Context, preview *ImportPreview) *ImportResult {
	batchID := s.newBatchID()
	result := &ImportResult{BatchID: batchID, Errors: []string{}}
	logger := utils.LoggerFromContext(ctx).WithField("batch_id", batchID)

	for _, row := range preview.Valid {
		tx := row.Transaction
		tx.BatchID = &batchID
		if err := s.portfolioService.AddAssetTransaction(ctx, &tx); err != nil {
			logger.WithError(err).WithField("row", row.Row).Warn("import row rejected")
			result.Errors = append(result.Errors, RowError{Row: row.Row, Message: err.Error()}.Error())
			continue
		}
		result.SuccessCount++
	}

	logger.WithField("success_count", result.SuccessCount).WithField("errors", len(result.Errors)).Info("import batch submitted")
	return result
}

// parseImportRow returns the candidate transaction of row i, or the reason it
// is rejected. Checks run in field order and stop at the first failure.
func parseImportRow(table *utils.Table, i int) (models.AssetTransaction, string) {
	var tx models.AssetTransaction

	date, err := utils.ParseFlexibleDate(table.Value(i, "date"))
	if err != nil {
		return tx, "Invalid date"
	}
	assetType, ok := models.ParseAssetType(table.Value(i, "asset_type"))
	if !ok {
		return tx, "asset_type must be stock/crypto"
	}
	symbol := table.Value(i, "symbol")
	if symbol == "" {
		return tx, "Missing symbol"
	}
	action, ok := models.ParseAction(table.Value(i, "action"))
	if !ok {
		return tx, "action must be buy/sell"
	}
	quantity, ok := positive(table.Value(i, "quantity"))
	if !ok {
		return tx, "Invalid quantity"
	}
	price, ok := positive(table.Value(i, "price"))
	if !ok {
		return tx, "Invalid price"
	}

	tx = models.AssetTransaction{
		Date:      date,
		AssetType: assetType,
		Symbol:    symbol,
		Name:      optionalCell(table.Value(i, "name")),
		Quantity:  quantity,
		Price:     price,
		Action:    action,
		Remarks:   optionalCell(table.Value(i, "remarks")),
	}
	tx.Normalize()
	return tx, ""
}

func positive(cell string) (float64, bool) {
	v, ok := models.NormalizeFloat(cell).Get()
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

func optionalCell(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}
