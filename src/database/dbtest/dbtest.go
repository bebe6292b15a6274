// Package dbtest connects repository tests to the TESTING database.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"tracker/src/config"
	"tracker/src/database"
)

var (
	once    sync.Once
	pool    *pgxpool.Pool
	initErr error
)

// SetupTestDB returns a migrated pool for the TESTING settings, or skips the
// test when the database is not reachable.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	once.Do(func() {
		pool, initErr = open()
	})
	if initErr != nil {
		t.Skipf("test database not available: %v", initErr)
	}
	return pool
}

func open() (*pgxpool.Pool, error) {
	root, err := ServiceRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(filepath.Join(root, "settings"), "TESTING")
	if err != nil {
		return nil, fmt.Errorf("failed to load test configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p, err := pgxpool.New(ctx, database.DSN(&cfg.Databases.SQL))
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}

	db := stdlib.OpenDBFromPool(p)
	defer db.Close()
	if err := goose.SetDialect("postgres"); err != nil {
		p.Close()
		return nil, err
	}
	if err := goose.Up(db, filepath.Join(root, "migrations", "sql")); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return p, nil
}

// ServiceRoot walks up from the working directory to the directory holding go.mod.
func ServiceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		wd = parent
	}
}

// TruncateTables empties the given tables and resets their id sequences.
func TruncateTables(t *testing.T, p *pgxpool.Pool, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := p.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}
