package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"tracker/src/config"
	"tracker/src/models"
	"tracker/src/utils/requests"
)

// ErrPriceNotFound is returned when the chart payload has no usable price.
var ErrPriceNotFound = errors.New("yahoo: price not found")

type YahooServiceClientI interface {
	GetRegularMarketPrice(ctx context.Context, symbol string) (float64, error)
}

type YahooServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of YahooServiceClient. The endpoint rejects
// requests without a browser-like User-Agent.
func NewClient(cfg *config.Config) *YahooServiceClient {
	headers := map[string]string{"User-Agent": cfg.ExternalClients.Yahoo.UserAgent}
	return &YahooServiceClient{
		API:     requests.NewExternalAPIService(cfg.Prices.Timeout, headers),
		BaseURL: strings.TrimSuffix(cfg.ExternalClients.Yahoo.BaseURL, "/"),
	}
}

// GetRegularMarketPrice fetches the latest regular-market price of a stock.
func (c *YahooServiceClient) GetRegularMarketPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.BaseURL, url.PathEscape(symbol))

	params := url.Values{}
	params.Add("range", chartRange)
	params.Add("interval", chartInterval)

	var payload any
	if err := c.API.GetJSON(ctx, endpoint, params, &payload); err != nil {
		return 0, err
	}

	value, err := jsonpath.Get(RegularMarketPricePath, payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrPriceNotFound, symbol, err)
	}
	// jsonpath may wrap a single match in a list
	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return 0, fmt.Errorf("%w: %s", ErrPriceNotFound, symbol)
		}
		value = list[0]
	}

	price, ok := models.NormalizeFloat(value).Get()
	if !ok {
		return 0, fmt.Errorf("%w: %s: not a number %v", ErrPriceNotFound, symbol, value)
	}
	return price, nil
}

var _ YahooServiceClientI = (*YahooServiceClient)(nil)
