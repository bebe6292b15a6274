package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a settings file", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir(), "")
		require.NoError(t, err)

		assert.Equal(t, API, cfg.Service.Type)
		assert.Equal(t, 5*time.Minute, cfg.Prices.TTL)
		assert.Equal(t, 5*time.Second, cfg.Prices.Timeout)
		assert.Equal(t, 30, cfg.Dashboard.Days)
		assert.Len(t, cfg.Import.ColumnMap, len(DefaultColumnMap))
		assert.False(t, cfg.Databases.Redis.Enabled)
	})

	t.Run("environment file is merged over the base file", func(t *testing.T) {
		dir := t.TempDir()
		writeSettings(t, dir, "appsettings.yaml", `
service:
  type: API
  port: "9000"
databases:
  sql:
    host: db
    database: tracker
prices:
  ttl: 10m
`)
		writeSettings(t, dir, "appsettings.TESTING.yaml", `
databases:
  sql:
    database: tracker_test
`)

		cfg, err := LoadConfig(dir, "TESTING")
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.Service.Port)
		assert.Equal(t, "db", cfg.Databases.SQL.Host)
		assert.Equal(t, "tracker_test", cfg.Databases.SQL.Database)
		assert.Equal(t, 10*time.Minute, cfg.Prices.TTL)
	})

	t.Run("environment variables override keys", func(t *testing.T) {
		t.Setenv("DATABASES_SQL_PASSWORD", "s3cret")
		t.Setenv("SERVICE_TYPE", "WORKER")
		t.Setenv("EXTERNALCLIENTS_LLM_APIKEY", "key")

		cfg, err := LoadConfig(t.TempDir(), "")
		require.NoError(t, err)

		assert.Equal(t, "s3cret", cfg.Databases.SQL.Password)
		assert.Equal(t, WORKER, cfg.Service.Type)
		assert.Equal(t, "key", cfg.ExternalClients.LLM.APIKey)
	})

	t.Run("malformed settings file", func(t *testing.T) {
		dir := t.TempDir()
		writeSettings(t, dir, "appsettings.yaml", "service: [unterminated")

		_, err := LoadConfig(dir, "")
		assert.Error(t, err)
	})
}
