package schemas

import (
	"tracker/src/models"
)

type ProcessTextRequest struct {
	Text string `json:"text"`
}

type TransactionRequest struct {
	Date        Date    `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (r *TransactionRequest) ToModel() *models.Transaction {
	return &models.Transaction{
		Date:        r.Date.ToTime(),
		Type:        models.TransactionType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
	}
}

type TransactionResponse struct {
	ID          int     `json:"id"`
	Date        Date    `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Date:        NewDate(t.Date),
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Price:       t.Price,
	}
}

func NewTransactionResponses(txs []models.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		res = append(res, NewTransactionResponse(&txs[i]))
	}
	return res
}

type CreatedResponse struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func NewSeries(points []models.SeriesPoint) []SeriesPoint {
	res := make([]SeriesPoint, 0, len(points))
	for _, p := range points {
		res = append(res, SeriesPoint{Label: p.Label, Value: p.Value})
	}
	return res
}

type DashboardResponse struct {
	DateFrom          Date          `json:"date_from"`
	DateTo            Date          `json:"date_to"`
	TotalIncome       float64       `json:"total_income"`
	TotalExpense      float64       `json:"total_expense"`
	Net               float64       `json:"net"`
	ExpenseByCategory []SeriesPoint `json:"expense_by_category"`
	DailyNet          []SeriesPoint `json:"daily_net"`
}

func NewDashboardResponse(s *models.DashboardSummary) *DashboardResponse {
	return &DashboardResponse{
		DateFrom:          NewDate(s.DateFrom),
		DateTo:            NewDate(s.DateTo),
		TotalIncome:       s.TotalIncome,
		TotalExpense:      s.TotalExpense,
		Net:               s.Net,
		ExpenseByCategory: NewSeries(s.ExpenseByCategory),
		DailyNet:          NewSeries(s.DailyNet),
	}
}
