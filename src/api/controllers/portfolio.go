package controllers

import (
	"context"
	"io"

	"tracker/src/models"
	"tracker/src/portfolio"
	"tracker/src/schemas"
)

func (c *Controller) CreateAssetTransaction(ctx context.Context, req *schemas.AssetTransactionRequest) (*schemas.CreatedResponse, error) {
	t := req.ToModel()
	if err := c.PortfolioService.AddAssetTransaction(ctx, t); err != nil {
		return nil, err
	}
	return &schemas.CreatedResponse{Status: "success", ID: t.ID}, nil
}

func (c *Controller) ListAssetTransactions(ctx context.Context, assetType string) ([]schemas.AssetTransactionResponse, error) {
	txs, err := c.PortfolioService.ListAssetTransactions(ctx, assetFilter(assetType))
	if err != nil {
		return nil, err
	}
	return schemas.NewAssetTransactionResponses(txs), nil
}

func (c *Controller) ListHoldings(ctx context.Context, assetType string) ([]schemas.HoldingResponse, error) {
	holdings, err := c.PortfolioService.Holdings(ctx, assetFilter(assetType))
	if err != nil {
		return nil, err
	}
	return schemas.NewHoldingResponses(holdings), nil
}

// GetPortfolio values the holdings. top is clamped to the supported range.
func (c *Controller) GetPortfolio(ctx context.Context, assetType string, top int) (*schemas.PortfolioResponse, error) {
	report, err := c.PortfolioService.Valuation(ctx, assetFilter(assetType), portfolio.ClampTopN(top))
	if err != nil {
		return nil, err
	}
	return schemas.NewPortfolioResponse(report), nil
}

func (c *Controller) ExportPortfolio(ctx context.Context, w io.Writer, format string, assetType string) error {
	report, err := c.PortfolioService.Valuation(ctx, assetFilter(assetType), portfolio.ClampTopN(0))
	if err != nil {
		return err
	}
	return c.ExportService.WriteValuation(w, format, report.Valuation)
}

func assetFilter(assetType string) models.AssetTransactionFilter {
	return models.AssetTransactionFilter{AssetType: models.AssetType(assetType)}
}
