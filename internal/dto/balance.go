package dto

import (
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSummaryParams selects the reporting period.
type BalanceSummaryParams struct {
	Year   int `form:"year" binding:"required"`
	Month0 int `form:"month0" binding:"min=0,max=11"`
}

// BalanceSummaryResponse carries the period totals and the running balances.
type BalanceSummaryResponse struct {
	Income           decimal.Decimal            `json:"income"`
	Expense          decimal.Decimal            `json:"expense"`
	RealBalance      decimal.Decimal            `json:"realBalance"`
	ProjectedBalance decimal.Decimal            `json:"projectedBalance"`
	AccountBalances  map[string]decimal.Decimal `json:"accountBalances"`
}

// ToBalanceSummaryResponse converts the domain summary to its DTO.
func ToBalanceSummaryResponse(s *domain.BalanceSummary) BalanceSummaryResponse {
	return BalanceSummaryResponse{
		Income:           s.Income,
		Expense:          s.Expense,
		RealBalance:      s.RealBalance,
		ProjectedBalance: s.ProjectedBalance,
		AccountBalances:  s.AccountBalances,
	}
}

// MonthTotalsResponse is one point of the monthly comparison series.
type MonthTotalsResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ToMonthTotalsResponses converts the comparison series.
func ToMonthTotalsResponses(totals []domain.MonthTotals) []MonthTotalsResponse {
	res := make([]MonthTotalsResponse, len(totals))
	for i, t := range totals {
		res[i] = MonthTotalsResponse{Year: t.Year, Month: t.Month, Income: t.Income, Expense: t.Expense}
	}
	return res
}

// CloseMonthRequest settles the selected account balances into adjustment
// transactions dated on the first day of the following month.
type CloseMonthRequest struct {
	Year       int      `json:"year" binding:"required"`
	Month0     int      `json:"month0" binding:"min=0,max=11"`
	AccountIDs []string `json:"accountIDs" binding:"required,min=1"`
	CategoryID string   `json:"categoryID" binding:"required"`
}

// CloseMonthResponse reports what the close produced.
type CloseMonthResponse struct {
	AccountsClosed int       `json:"accountsClosed"`
	ClosedAt       time.Time `json:"closedAt"`
}

// ToCloseMonthResponse converts the close result.
func ToCloseMonthResponse(r *domain.CloseMonthResult) CloseMonthResponse {
	return CloseMonthResponse{AccountsClosed: r.AccountsClosed, ClosedAt: r.ClosedAt}
}
