package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"tracker/src/config"
)

const (
	pingAttempts = 5
	pingBackoff  = 500 * time.Millisecond
)

// DSN builds the connection string from cfg unless one is configured verbatim.
func DSN(cfg *config.SQLConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.Port)
}

// SetupDB opens a pool and pings it with exponential backoff, so the service
// can start alongside its database container.
func SetupDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return connect(ctx, DSN(&cfg.Databases.SQL), pingAttempts)
}

func connect(ctx context.Context, dsn string, attempts uint64) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(pingBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
