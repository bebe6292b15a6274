package controllers

import (
	"context"
	"io"

	"tracker/src/schemas"
	"tracker/src/services"
)

// ImportAssetTransactions validates an uploaded file and, unless dryRun is
// set, stores its valid rows as one batch.
func (c *Controller) ImportAssetTransactions(ctx context.Context, filename string, file io.Reader, dryRun bool) (any, error) {
	table, err := c.ImportService.ReadTable(filename, file)
	if err != nil {
		return nil, err
	}
	preview, err := c.ImportService.Validate(table)
	if err != nil {
		return nil, err
	}
	invalid := rowErrors(preview.Invalid)

	if dryRun {
		res := &schemas.ImportPreviewResponse{
			ValidCount: len(preview.Valid),
			Valid:      make([]schemas.ImportRowResponse, 0, len(preview.Valid)),
			Invalid:    invalid,
		}
		for i := range preview.Valid {
			res.Valid = append(res.Valid, schemas.ImportRowResponse{
				Row:         preview.Valid[i].Row,
				Transaction: schemas.NewAssetTransactionResponse(&preview.Valid[i].Transaction),
			})
		}
		return res, nil
	}

	result := c.ImportService.Submit(ctx, preview)
	return &schemas.ImportResponse{
		BatchID:      result.BatchID,
		SuccessCount: result.SuccessCount,
		Errors:       result.Errors,
		Invalid:      invalid,
	}, nil
}

func rowErrors(errs []services.RowError) []schemas.ImportRowError {
	res := make([]schemas.ImportRowError, 0, len(errs))
	for _, e := range errs {
		res = append(res, schemas.ImportRowError{Row: e.Row, Message: e.Message})
	}
	return res
}
