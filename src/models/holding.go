package models

// HoldingKey identifies a position.
type HoldingKey struct {
	AssetType AssetType
	Symbol    string
}

func (k HoldingKey) String() string {
	return string(k.AssetType) + ":" + k.Symbol
}

// Holding is the current position in one symbol, derived from its full
// transaction history. It is never persisted.
type Holding struct {
	AssetType        AssetType
	Symbol           string
	Name             *string
	NetQuantity      float64
	AvgBuyPrice      float64
	TotalBuyQuantity float64
	TotalBuyCost     float64
}

func (h *Holding) Key() HoldingKey {
	return HoldingKey{AssetType: h.AssetType, Symbol: h.Symbol}
}

// ValuedHolding is a Holding priced against the market. Every derived figure
// is absent when it cannot be computed.
type ValuedHolding struct {
	Holding
	CurrentPrice OptionalFloat
	CurrentValue OptionalFloat
	CostBasis    OptionalFloat
	GainLoss     OptionalFloat
	GainLossPct  OptionalFloat
	WeightPct    OptionalFloat
}

// PortfolioValuation holds the valued rows plus totals that skip absent figures.
type PortfolioValuation struct {
	Holdings          []ValuedHolding
	TotalCostBasis    float64
	TotalCurrentValue float64
	TotalGainLoss     float64
	UnpricedCount     int
}

// SeriesPoint is one labelled value of a chart series.
type SeriesPoint struct {
	Label string
	Value float64
}

// WeightPoint is a symbol's share of a subtotal of current value.
type WeightPoint struct {
	Symbol       string
	CurrentValue float64
	WeightPct    OptionalFloat
}

// PortfolioReport is a valuation plus the chart series derived from it.
type PortfolioReport struct {
	Valuation             *PortfolioValuation
	AllocationBySymbol    []SeriesPoint
	AllocationByAssetType []SeriesPoint
	GainLossBySymbol      []SeriesPoint
	TopWeights            []WeightPoint
}
