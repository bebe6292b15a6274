package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/src/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CoinGeckoServiceClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.ExternalClients.CoinGecko.BaseURL = server.URL + "/"
	cfg.Prices.Timeout = time.Second
	return NewClient(cfg)
}

func TestCoinID(t *testing.T) {
	assert.Equal(t, "bitcoin", CoinID("BTC"))
	assert.Equal(t, "binancecoin", CoinID("bnb"))
	assert.Equal(t, "cardano", CoinID(" ADA "))
	assert.Equal(t, "solana", CoinID("SOLANA"))
	assert.Equal(t, "eth", CoinID("ETH"))
}

func TestGetUSDPrice(t *testing.T) {
	t.Run("returns the usd price of the mapped coin", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			_, _ = w.Write([]byte(`{"bitcoin": {"usd": 64250.5}}`))
		})

		price, err := client.GetUSDPrice(context.Background(), "BTC")
		require.NoError(t, err)
		assert.Equal(t, 64250.5, price)
	})

	t.Run("unknown coin yields an empty object", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := client.GetUSDPrice(context.Background(), "NOPE")
		assert.True(t, errors.Is(err, ErrPriceNotFound))
	})

	t.Run("null price", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"eth": {"usd": null}}`))
		})

		_, err := client.GetUSDPrice(context.Background(), "ETH")
		assert.True(t, errors.Is(err, ErrPriceNotFound))
	})

	t.Run("rate limited", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.GetUSDPrice(context.Background(), "BTC")
		assert.Error(t, err)
	})
}
