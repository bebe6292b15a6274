package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tracker/src/api"
	apicontrollers "tracker/src/api/controllers"
	apihandlers "tracker/src/api/handlers"
	"tracker/src/clients/coingecko"
	"tracker/src/clients/llm"
	"tracker/src/clients/yahoo"
	"tracker/src/config"
	"tracker/src/database"
	"tracker/src/repositories"
	"tracker/src/services"
	"tracker/src/utils"
	aws_handler "tracker/src/utils/aws"
	redis_utils "tracker/src/utils/redis"
	"tracker/src/worker"
	workercontrollers "tracker/src/worker/controllers"
	workerhandlers "tracker/src/worker/handlers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}
	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC, err := run(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't run")
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("Error while running")
	}
}

// run starts the API or the worker process and returns a channel that yields
// once the server has stopped.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	if err := resolveSecrets(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app, err := newServices(ctx, cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	var httpServer *http.Server
	var onShutdown func()
	switch cfg.Service.Type {
	case config.WORKER:
		controller := workercontrollers.NewController(app.portfolio, logger)
		if spec := cfg.Worker.PriceRefreshCron; spec != "" {
			if err := controller.SchedulePriceRefresh(spec); err != nil {
				db.Close()
				return nil, fmt.Errorf("invalid price refresh schedule %q: %w", spec, err)
			}
		}
		onShutdown = controller.StopScheduler
		server := worker.NewServer(workerhandlers.NewHandler(controller, logger))
		httpServer = worker.NewHTTPServer(cfg, server)
	default:
		controller := apicontrollers.NewController(app.transactions, app.portfolio, app.imports, services.NewExportService())
		server := api.NewServer(cfg, apihandlers.NewHandler(controller, logger))
		httpServer = api.NewHTTPServer(cfg, server)
	}

	errC := make(chan error, 2)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer func() {
			if onShutdown != nil {
				onShutdown()
			}
			app.close()
			db.Close()
			cancel()
		}()

		errC <- httpServer.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.WithField("type", cfg.Service.Type).WithField("port", cfg.Service.Port).Info("Starting server")

		// ListenAndServe always returns a non-nil error. After Shutdown or Close
		// the returned error is ErrServerClosed.
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("An error raised while setting up server")
			errC <- err
		}
	}()
	return errC, nil
}

type appServices struct {
	transactions services.TransactionServiceI
	portfolio    services.PortfolioServiceI
	imports      services.ImportServiceI
	close        func()
}

func newServices(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, logger *logrus.Logger) (*appServices, error) {
	closeFn := func() {}

	cache := services.NewMemoryPriceCache(cfg.Prices.TTL, nil)
	if cfg.Databases.Redis.Enabled {
		handler, err := redis_utils.NewRedisHandler(ctx, &cfg.Databases.Redis)
		if err != nil {
			return nil, err
		}
		cache = services.NewLayeredPriceCache(cache, services.NewRedisPriceCache(handler, cfg.Prices.TTL))
		closeFn = func() { _ = handler.Close() }
	}
	prices := services.NewPriceService(
		cache,
		services.NewMarketPriceFetchers(coingecko.NewClient(cfg), yahoo.NewClient(cfg)),
		cfg.Prices.Timeout,
	)

	var extractor llm.LLMServiceClientI
	if cfg.ExternalClients.LLM.APIKey != "" {
		client, err := llm.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		extractor = client
	} else {
		logger.Warn("No LLM api key configured, text processing is disabled")
	}

	assetTransactions := repositories.NewAssetTransactionRepository(db)
	portfolioService := services.NewPortfolioService(assetTransactions, repositories.NewHoldingRepository(assetTransactions), prices)

	return &appServices{
		transactions: services.NewTransactionService(repositories.NewTransactionRepository(db), extractor, nil, cfg.Dashboard.Days),
		portfolio:    portfolioService,
		imports:      services.NewImportService(portfolioService, cfg.Import.ColumnMap),
		close:        closeFn,
	}, nil
}

// resolveSecrets overrides configured credentials with AWS Secrets Manager
// values when a region is set.
func resolveSecrets(ctx context.Context, cfg *config.Config) error {
	if cfg.Secrets.Region == "" {
		return nil
	}
	handler, err := aws_handler.NewAWSHandler(cfg.Secrets.Region)
	if err != nil {
		return err
	}
	if err := handler.SecretManager.ResolveInto(ctx, cfg.Secrets.LLMAPIKeyID, &cfg.ExternalClients.LLM.APIKey); err != nil {
		return err
	}
	return handler.SecretManager.ResolveInto(ctx, cfg.Secrets.DatabasePassword, &cfg.Databases.SQL.Password)
}
