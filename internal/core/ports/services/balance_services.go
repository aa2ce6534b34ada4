package services

import (
	"context"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
)

// BalanceSvcFacade folds the transaction set into derived balance views.
type BalanceSvcFacade interface {
	// Summary computes the balance views for [periodStart, periodEnd].
	Summary(ctx context.Context, user domain.AuthUser, periodStart, periodEnd time.Time) (*domain.BalanceSummary, error)

	// MonthlyComparison returns income/expense totals per month for the
	// six month window ending at the month containing ref.
	MonthlyComparison(ctx context.Context, user domain.AuthUser, ref time.Time) ([]domain.MonthTotals, error)

	// CloseMonth zeroes the selected accounts' global balances by creating
	// one paid adjustment transaction per account.
	CloseMonth(ctx context.Context, user domain.AuthUser, req dto.CloseMonthRequest) (*domain.CloseMonthResult, error)
}
