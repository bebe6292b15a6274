package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Prices          PricesConfig         `mapstructure:"prices"`
	Import          ImportConfig         `mapstructure:"import"`
	Dashboard       DashboardConfig      `mapstructure:"dashboard"`
	Worker          WorkerConfig         `mapstructure:"worker"`
	Logging         LoggingConfig        `mapstructure:"logging"`
	Secrets         SecretsConfig        `mapstructure:"secrets"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	JWTSecret      string      `mapstructure:"jwtSecret"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type ExternalClientConfig struct {
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Yahoo     YahooConfig     `mapstructure:"yahoo"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

type CoinGeckoConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

type YahooConfig struct {
	BaseURL   string `mapstructure:"baseUrl"`
	UserAgent string `mapstructure:"userAgent"`
}

type LLMConfig struct {
	APIKey string `mapstructure:"apiKey"`
	Model  string `mapstructure:"model"`
}

type PricesConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ImportConfig struct {
	ColumnMap map[string]string `mapstructure:"columnMap"`
}

type DashboardConfig struct {
	Days int `mapstructure:"days"`
}

type WorkerConfig struct {
	PriceRefreshCron string `mapstructure:"priceRefreshCron"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

type SecretsConfig struct {
	Region           string `mapstructure:"region"`
	LLMAPIKeyID      string `mapstructure:"llmApiKeyId"`
	DatabasePassword string `mapstructure:"databasePasswordId"`
}

// DefaultColumnMap maps the broker export headers to asset transaction fields.
var DefaultColumnMap = map[string]string{
	"Date":       "date",
	"Asset Type": "asset_type",
	"Stock Code": "symbol",
	"Stock Name": "name",
	"Bid Price":  "price",
	"Quantity":   "quantity",
	"Buy / Sell": "action",
	"Remarks":    "remarks",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8080")
	v.SetDefault("service.jwtSecret", "")
	v.SetDefault("service.allowedOrigins", []string{"*"})

	v.SetDefault("databases.sql.host", "localhost")
	v.SetDefault("databases.sql.port", "5432")
	v.SetDefault("databases.sql.username", "postgres")
	v.SetDefault("databases.sql.password", "")
	v.SetDefault("databases.sql.driver", "postgres")
	v.SetDefault("databases.sql.database", "tracker")
	v.SetDefault("databases.sql.connection_string", "")

	v.SetDefault("databases.redis.enabled", false)
	v.SetDefault("databases.redis.host", "localhost")
	v.SetDefault("databases.redis.port", "6379")
	v.SetDefault("databases.redis.username", "")
	v.SetDefault("databases.redis.password", "")
	v.SetDefault("databases.redis.database", 0)
	v.SetDefault("databases.redis.tls", false)

	v.SetDefault("externalClients.coingecko.baseUrl", "https://api.coingecko.com/api/v3")
	v.SetDefault("externalClients.yahoo.baseUrl", "https://query1.finance.yahoo.com")
	v.SetDefault("externalClients.yahoo.userAgent", "Mozilla/5.0")
	v.SetDefault("externalClients.llm.apiKey", "")
	v.SetDefault("externalClients.llm.model", "gemini-2.0-flash")

	v.SetDefault("prices.ttl", 5*time.Minute)
	v.SetDefault("prices.timeout", 5*time.Second)
	v.SetDefault("import.columnMap", DefaultColumnMap)
	v.SetDefault("dashboard.days", 30)
	v.SetDefault("worker.priceRefreshCron", "*/5 * * * *")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.toFile", false)
	v.SetDefault("logging.filePath", "tracker.log")

	v.SetDefault("secrets.region", "")
	v.SetDefault("secrets.llmApiKeyId", "")
	v.SetDefault("secrets.databasePasswordId", "")
}

// LoadConfig reads appsettings.yaml from path, merges appsettings.<env>.yaml
// when env is set and lets environment variables override any key, e.g.
// DATABASES_SQL_PASSWORD for databases.sql.password.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
