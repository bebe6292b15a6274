package controllers

import (
	"context"
	"io"
	"time"

	"tracker/src/models"
	"tracker/src/schemas"
	"tracker/src/services"
)

type IController interface {
	ProcessText(ctx context.Context, req *schemas.ProcessTextRequest) (*services.ProcessResult, error)
	CreateTransaction(ctx context.Context, req *schemas.TransactionRequest) (*schemas.CreatedResponse, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]schemas.TransactionResponse, error)
	ExportTransactions(ctx context.Context, w io.Writer, format string, filter models.TransactionFilter) error
	GetDashboard(ctx context.Context, days int) (*schemas.DashboardResponse, error)

	CreateAssetTransaction(ctx context.Context, req *schemas.AssetTransactionRequest) (*schemas.CreatedResponse, error)
	ListAssetTransactions(ctx context.Context, assetType string) ([]schemas.AssetTransactionResponse, error)
	ListHoldings(ctx context.Context, assetType string) ([]schemas.HoldingResponse, error)
	GetPortfolio(ctx context.Context, assetType string, top int) (*schemas.PortfolioResponse, error)
	ExportPortfolio(ctx context.Context, w io.Writer, format string, assetType string) error
	ImportAssetTransactions(ctx context.Context, filename string, file io.Reader, dryRun bool) (any, error)
}

type Controller struct {
	TransactionService services.TransactionServiceI
	PortfolioService   services.PortfolioServiceI
	ImportService      services.ImportServiceI
	ExportService      services.ExportServiceI
	Now                func() time.Time
}

func NewController(
	transactionService services.TransactionServiceI,
	portfolioService services.PortfolioServiceI,
	importService services.ImportServiceI,
	exportService services.ExportServiceI,
) *Controller {
	return &Controller{
		TransactionService: transactionService,
		PortfolioService:   portfolioService,
		ImportService:      importService,
		ExportService:      exportService,
		Now:                time.Now,
	}
}
