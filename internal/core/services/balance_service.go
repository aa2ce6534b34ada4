package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const comparisonMonths = 6

// BalanceService folds the transaction set into derived balance views.
// Real balance is all-time and paid-only; period totals count every status.
type BalanceService struct {
	stores storeSelector
}

func NewBalanceService(stores storeSelector) *BalanceService {
	return &BalanceService{stores: stores}
}

// Summary computes period income/expense, the all-time real balance, the
// per-account balances and the projected end-of-period balance.
func (s *BalanceService) Summary(ctx context.Context, user domain.AuthUser, periodStart, periodEnd time.Time) (*domain.BalanceSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	period, err := repos.TransactionRepo.FindTransactionsByDateRange(ctx, user.UserID, periodStart, periodEnd)
	if err != nil {
		logger.Error("Failed to load period transactions", slog.String("error", err.Error()))
		return nil, err
	}

	income := decimal.Zero
	expense := decimal.Zero
	pendingIncome := decimal.Zero
	pendingExpense := decimal.Zero
	for _, t := range period {
		switch t.Type {
		case domain.Income:
			income = income.Add(t.Amount)
			if t.PaymentStatus == domain.PaymentStatusPending {
				pendingIncome = pendingIncome.Add(t.Amount)
			}
		case domain.Expense:
			expense = expense.Add(t.Amount)
			if t.PaymentStatus == domain.PaymentStatusPending {
				pendingExpense = pendingExpense.Add(t.Amount)
			}
		}
	}

	// Real balance is the actual cash position: all-time, paid only.
	paid, err := repos.TransactionRepo.FindTransactionsByPaymentStatus(ctx, user.UserID, domain.PaymentStatusPaid)
	if err != nil {
		logger.Error("Failed to load paid transactions", slog.String("error", err.Error()))
		return nil, err
	}

	real := decimal.Zero
	perAccount := make(map[string]decimal.Decimal)
	for _, t := range paid {
		signed := t.SignedAmount()
		real = real.Add(signed)
		perAccount[t.AccountID] = perAccount[t.AccountID].Add(signed)
	}

	summary := &domain.BalanceSummary{
		Income:           income,
		Expense:          expense,
		RealBalance:      real,
		ProjectedBalance: real.Add(pendingIncome).Sub(pendingExpense),
		AccountBalances:  perAccount,
	}
	logger.Debug("Balance summary computed",
		slog.String("user_id", user.UserID),
		slog.Int("period_records", len(period)),
		slog.Int("paid_records", len(paid)))
	return summary, nil
}

// MonthlyComparison returns income/expense per month for the six month
// window ending at the month containing ref, oldest first.
func (s *BalanceService) MonthlyComparison(ctx context.Context, user domain.AuthUser, ref time.Time) ([]domain.MonthTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	first := dates.AddMonths(dates.Normalize(ref), -(comparisonMonths - 1))
	windowStart, _ := dates.MonthWindow(first)
	_, windowEnd := dates.MonthWindow(dates.Normalize(ref))

	txns, err := repos.TransactionRepo.FindTransactionsByDateRange(ctx, user.UserID, windowStart, windowEnd)
	if err != nil {
		logger.Error("Failed to load comparison window", slog.String("error", err.Error()))
		return nil, err
	}

	totals := make([]domain.MonthTotals, comparisonMonths)
	index := make(map[[2]int]int, comparisonMonths)
	for i := 0; i < comparisonMonths; i++ {
		m := dates.AddMonths(first, i)
		totals[i] = domain.MonthTotals{
			Year:    dates.Year(m),
			Month:   dates.Month0(m),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		index[[2]int{totals[i].Year, totals[i].Month}] = i
	}

	for _, t := range txns {
		i, ok := index[[2]int{t.Year, t.Month}]
		if !ok {
			continue
		}
		switch t.Type {
		case domain.Income:
			totals[i].Income = totals[i].Income.Add(t.Amount)
		case domain.Expense:
			totals[i].Expense = totals[i].Expense.Add(t.Amount)
		}
	}
	return totals, nil
}

// CloseMonth settles the selected accounts: each account whose all-time paid
// balance is at least one cent away from zero receives a paid adjustment
// transaction of the opposite sign, dated the first day of the following
// month. Returns how many accounts were settled.
func (s *BalanceService) CloseMonth(ctx context.Context, user domain.AuthUser, req dto.CloseMonthRequest) (*domain.CloseMonthResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	if req.Month0 < 0 || req.Month0 > 11 {
		return nil, fmt.Errorf("%w: month0 out of range", apperrors.ErrValidation)
	}
	if _, err := repos.CategoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, err
	}

	paid, err := repos.TransactionRepo.FindTransactionsByPaymentStatus(ctx, user.UserID, domain.PaymentStatusPaid)
	if err != nil {
		logger.Error("Failed to load paid transactions", slog.String("error", err.Error()))
		return nil, err
	}

	balances := make(map[string]decimal.Decimal)
	for _, t := range paid {
		balances[t.AccountID] = balances[t.AccountID].Add(t.SignedAmount())
	}

	adjustmentDay := dates.AddMonths(dates.Canonical(req.Year, time.Month(req.Month0+1), 1), 1)
	cent := decimal.NewFromFloat(0.01)
	now := time.Now()

	var adjustments []domain.Transaction
	for _, accountID := range req.AccountIDs {
		balance := balances[accountID]
		if balance.Abs().LessThan(cent) {
			continue
		}
		txType := domain.Expense
		if balance.IsNegative() {
			txType = domain.Income
		}
		adjustments = append(adjustments, domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        user.UserID,
			Description:   fmt.Sprintf("Fechamento %02d/%d", req.Month0+1, req.Year),
			Amount:        balance.Abs(),
			Date:          adjustmentDay,
			Month:         dates.Month0(adjustmentDay),
			Year:          dates.Year(adjustmentDay),
			Type:          txType,
			CategoryID:    req.CategoryID,
			AccountID:     accountID,
			PaymentStatus: domain.PaymentStatusPaid,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     user.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: user.UserID,
			},
		})
	}

	if len(adjustments) > 0 {
		if err := repos.TransactionRepo.SaveTransactions(ctx, adjustments); err != nil {
			logger.Error("Failed to save close-month adjustments", slog.String("error", err.Error()), slog.Int("count", len(adjustments)))
			return nil, err
		}
	}

	logger.Info("Month closed",
		slog.String("user_id", user.UserID),
		slog.Int("accounts_closed", len(adjustments)))
	return &domain.CloseMonthResult{AccountsClosed: len(adjustments), ClosedAt: now}, nil
}
