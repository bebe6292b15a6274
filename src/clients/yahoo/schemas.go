package yahoo

// RegularMarketPricePath locates the last regular-session price in a chart payload.
const RegularMarketPricePath = "$.chart.result[0].meta.regularMarketPrice"

// chart query parameters for the latest daily candle
const (
	chartRange    = "1d"
	chartInterval = "1d"
)
