package coingecko

import "tracker/src/models"

// SimplePriceResponse is the body of /simple/price: coin id -> currency -> price.
type SimplePriceResponse map[string]map[string]models.OptionalFloat
