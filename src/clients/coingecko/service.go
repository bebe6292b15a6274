package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tracker/src/config"
	"tracker/src/utils/requests"
)

const vsCurrency = "usd"

// ErrPriceNotFound is returned when the payload has no usable price for the coin.
var ErrPriceNotFound = errors.New("coingecko: price not found")

// knownCoinIDs maps tickers whose CoinGecko id is not their lower-cased symbol.
var knownCoinIDs = map[string]string{
	"BTC": "bitcoin",
	"BNB": "binancecoin",
	"ADA": "cardano",
}

// CoinID returns the CoinGecko id for a ticker.
func CoinID(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if id, ok := knownCoinIDs[symbol]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

type CoinGeckoServiceClientI interface {
	GetUSDPrice(ctx context.Context, symbol string) (float64, error)
}

type CoinGeckoServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of CoinGeckoServiceClient
func NewClient(cfg *config.Config) *CoinGeckoServiceClient {
	return &CoinGeckoServiceClient{
		API:     requests.NewExternalAPIService(cfg.Prices.Timeout, nil),
		BaseURL: strings.TrimSuffix(cfg.ExternalClients.CoinGecko.BaseURL, "/"),
	}
}

// GetUSDPrice fetches the spot USD price of a crypto ticker.
func (c *CoinGeckoServiceClient) GetUSDPrice(ctx context.Context, symbol string) (float64, error) {
	id := CoinID(symbol)
	endpoint := fmt.Sprintf("%s/simple/price", c.BaseURL)

	params := url.Values{}
	params.Add("ids", id)
	params.Add("vs_currencies", vsCurrency)

	var response SimplePriceResponse
	if err := c.API.GetJSON(ctx, endpoint, params, &response); err != nil {
		return 0, err
	}

	price, ok := response[id][vsCurrency].Get()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPriceNotFound, id)
	}
	return price, nil
}

var _ CoinGeckoServiceClientI = (*CoinGeckoServiceClient)(nil)

