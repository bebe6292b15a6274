package schemas

import (
	"tracker/src/models"
)

type AssetTransactionRequest struct {
	Date      Date    `json:"date"`
	AssetType string  `json:"asset_type"`
	Symbol    string  `json:"symbol"`
	Name      *string `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Action    string  `json:"action"`
	Remarks   *string `json:"remarks"`
}

func (r *AssetTransactionRequest) ToModel() *models.AssetTransaction {
	return &models.AssetTransaction{
		Date:      r.Date.ToTime(),
		AssetType: models.AssetType(r.AssetType),
		Symbol:    r.Symbol,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
		Action:    models.Action(r.Action),
		Remarks:   r.Remarks,
	}
}

type AssetTransactionResponse struct {
	ID        int     `json:"id"`
	Date      Date    `json:"date"`
	AssetType string  `json:"asset_type"`
	Symbol    string  `json:"symbol"`
	Name      *string `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Action    string  `json:"action"`
	Remarks   *string `json:"remarks"`
	BatchID   *string `json:"batch_id"`
}

func NewAssetTransactionResponse(t *models.AssetTransaction) AssetTransactionResponse {
	return AssetTransactionResponse{
		ID:        t.ID,
		Date:      NewDate(t.Date),
		AssetType: string(t.AssetType),
		Symbol:    t.Symbol,
		Name:      t.Name,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Action:    string(t.Action),
		Remarks:   t.Remarks,
		BatchID:   t.BatchID,
	}
}

func NewAssetTransactionResponses(txs []models.AssetTransaction) []AssetTransactionResponse {
	res := make([]AssetTransactionResponse, 0, len(txs))
	for i := range txs {
		res = append(res, NewAssetTransactionResponse(&txs[i]))
	}
	return res
}

type HoldingResponse struct {
	AssetType   string  `json:"asset_type"`
	Symbol      string  `json:"symbol"`
	Name        *string `json:"name"`
	NetQuantity float64 `json:"net_quantity"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

func NewHoldingResponse(h *models.Holding) HoldingResponse {
	return HoldingResponse{
		AssetType:   string(h.AssetType),
		Symbol:      h.Symbol,
		Name:        h.Name,
		NetQuantity: h.NetQuantity,
		AvgBuyPrice: h.AvgBuyPrice,
	}
}

func NewHoldingResponses(holdings []models.Holding) []HoldingResponse {
	res := make([]HoldingResponse, 0, len(holdings))
	for i := range holdings {
		res = append(res, NewHoldingResponse(&holdings[i]))
	}
	return res
}

// ValuedHoldingResponse serializes absent figures as null.
type ValuedHoldingResponse struct {
	HoldingResponse
	CurrentPrice models.OptionalFloat `json:"current_price"`
	CurrentValue models.OptionalFloat `json:"current_value"`
	CostBasis    models.OptionalFloat `json:"cost_basis"`
	GainLoss     models.OptionalFloat `json:"gain_loss"`
	GainLossPct  models.OptionalFloat `json:"gain_loss_pct"`
	WeightPct    models.OptionalFloat `json:"weight_pct"`
}

type WeightPoint struct {
	Symbol       string               `json:"symbol"`
	CurrentValue float64              `json:"current_value"`
	WeightPct    models.OptionalFloat `json:"weight_pct"`
}

type PortfolioResponse struct {
	Holdings              []ValuedHoldingResponse `json:"holdings"`
	TotalCostBasis        float64                 `json:"total_cost_basis"`
	TotalCurrentValue     float64                 `json:"total_current_value"`
	TotalGainLoss         float64                 `json:"total_gain_loss"`
	UnpricedCount         int                     `json:"unpriced_count"`
	AllocationBySymbol    []SeriesPoint           `json:"allocation_by_symbol"`
	AllocationByAssetType []SeriesPoint           `json:"allocation_by_asset_type"`
	GainLossBySymbol      []SeriesPoint           `json:"gain_loss_by_symbol"`
	TopWeights            []WeightPoint           `json:"top_weights"`
}

func NewPortfolioResponse(report *models.PortfolioReport) *PortfolioResponse {
	v := report.Valuation
	res := &PortfolioResponse{
		Holdings:              make([]ValuedHoldingResponse, 0, len(v.Holdings)),
		TotalCostBasis:        v.TotalCostBasis,
		TotalCurrentValue:     v.TotalCurrentValue,
		TotalGainLoss:         v.TotalGainLoss,
		UnpricedCount:         v.UnpricedCount,
		AllocationBySymbol:    NewSeries(report.AllocationBySymbol),
		AllocationByAssetType: NewSeries(report.AllocationByAssetType),
		GainLossBySymbol:      NewSeries(report.GainLossBySymbol),
		TopWeights:            make([]WeightPoint, 0, len(report.TopWeights)),
	}
	for i := range v.Holdings {
		h := &v.Holdings[i]
		res.Holdings = append(res.Holdings, ValuedHoldingResponse{
			HoldingResponse: NewHoldingResponse(&h.Holding),
			CurrentPrice:    h.CurrentPrice,
			CurrentValue:    h.CurrentValue,
			CostBasis:       h.CostBasis,
			GainLoss:        h.GainLoss,
			GainLossPct:     h.GainLossPct,
			WeightPct:       h.WeightPct,
		})
	}
	for _, w := range report.TopWeights {
		res.TopWeights = append(res.TopWeights, WeightPoint{Symbol: w.Symbol, CurrentValue: w.CurrentValue, WeightPct: w.WeightPct})
	}
	return res
}

type ImportRowResponse struct {
	Row         int                      `json:"row"`
	Transaction AssetTransactionResponse `json:"transaction"`
}

// ImportPreviewResponse is returned by a dry run.
type ImportPreviewResponse struct {
	ValidCount int                 `json:"valid_count"`
	Valid      []ImportRowResponse `json:"valid"`
	Invalid    []ImportRowError    `json:"invalid"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResponse reports a submitted upload. Invalid rows were never sent to
// the store; Errors lists the rows the store refused.
type ImportResponse struct {
	BatchID      string           `json:"batch_id"`
	SuccessCount int              `json:"success_count"`
	Errors       []string         `json:"errors"`
	Invalid      []ImportRowError `json:"invalid"`
}
