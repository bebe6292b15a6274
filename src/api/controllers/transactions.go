package controllers

import (
	"context"
	"io"

	"tracker/src/models"
	"tracker/src/schemas"
	"tracker/src/services"
)

func (c *Controller) ProcessText(ctx context.Context, req *schemas.ProcessTextRequest) (*services.ProcessResult, error) {
	return c.TransactionService.ProcessText(ctx, req.Text)
}

func (c *Controller) CreateTransaction(ctx context.Context, req *schemas.TransactionRequest) (*schemas.CreatedResponse, error) {
	t := req.ToModel()
	if err := c.TransactionService.Create(ctx, t); err != nil {
		return nil, err
	}
	return &schemas.CreatedResponse{Status: "success", ID: t.ID}, nil
}

func (c *Controller) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]schemas.TransactionResponse, error) {
	txs, err := c.TransactionService.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return schemas.NewTransactionResponses(txs), nil
}

func (c *Controller) ExportTransactions(ctx context.Context, w io.Writer, format string, filter models.TransactionFilter) error {
	txs, err := c.TransactionService.List(ctx, filter)
	if err != nil {
		return err
	}
	return c.ExportService.WriteTransactions(w, format, txs)
}

func (c *Controller) GetDashboard(ctx context.Context, days int) (*schemas.DashboardResponse, error) {
	summary, err := c.TransactionService.Dashboard(ctx, days, c.Now())
	if err != nil {
		return nil, err
	}
	return schemas.NewDashboardResponse(summary), nil
}
