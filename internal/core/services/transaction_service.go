package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const recurringSeriesLength = 12

// TransactionService is the transaction lifecycle engine: it expands intents
// into series, propagates edits across series members and resolves deletion
// scopes. All date handling goes through the dates package so both store
// backends see identical canonical values.
type TransactionService struct {
	stores storeSelector
}

func NewTransactionService(stores storeSelector) *TransactionService {
	return &TransactionService{stores: stores}
}

// CreateTransaction expands one intent into the records it implies and saves
// them as a single atomic batch. Branch priority: recurring, installment,
// single. Returns the generated set.
func (s *TransactionService) CreateTransaction(ctx context.Context, user domain.AuthUser, req dto.CreateTransactionRequest) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	day, err := s.validateIntent(ctx, repos, req)
	if err != nil {
		return nil, err
	}

	status := req.PaymentStatus
	if status == "" {
		status = domain.PaymentStatusPending
	}

	var txns []domain.Transaction
	switch {
	case req.IsRecurring:
		txns = s.generateRecurring(user, req, day, status)
	case req.Type == domain.Expense && req.Installments > 1:
		txns = s.generateInstallments(user, req, day)
	default:
		t := s.newTransaction(user, req, day)
		t.PaymentStatus = status
		txns = []domain.Transaction{t}
	}

	// A mid-series start past the end of the series produces nothing.
	if len(txns) == 0 {
		logger.Info("Transaction intent produced no records", slog.String("user_id", user.UserID))
		return []domain.Transaction{}, nil
	}

	if err := repos.TransactionRepo.SaveTransactions(ctx, txns); err != nil {
		logger.Error("Failed to save transaction batch", slog.String("error", err.Error()), slog.Int("count", len(txns)))
		return nil, err
	}

	logger.Info("Transaction intent expanded and saved",
		slog.String("user_id", user.UserID),
		slog.Int("count", len(txns)),
		slog.Bool("recurring", req.IsRecurring),
		slog.Int("installments", req.Installments))
	return txns, nil
}

func (s *TransactionService) validateIntent(ctx context.Context, repos *portsrepo.Provider, req dto.CreateTransactionRequest) (time.Time, error) {
	if !req.Amount.IsPositive() {
		return time.Time{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	day, err := dates.ParseDay(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.CategoryID == "" {
		return time.Time{}, fmt.Errorf("%w: categoryID is required", apperrors.ErrValidation)
	}
	if req.AccountID == "" {
		return time.Time{}, fmt.Errorf("%w: accountID is required", apperrors.ErrValidation)
	}
	if _, err := repos.CategoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return time.Time{}, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, req.CategoryID)
		}
		return time.Time{}, err
	}
	if _, err := repos.AccountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return time.Time{}, fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, req.AccountID)
		}
		return time.Time{}, err
	}
	return day, nil
}

// newTransaction builds the common record shape shared by every branch.
func (s *TransactionService) newTransaction(user domain.AuthUser, req dto.CreateTransactionRequest, day time.Time) domain.Transaction {
	now := time.Now()
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        user.UserID,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          day,
		Month:         dates.Month0(day),
		Year:          dates.Year(day),
		Type:          req.Type,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		PaymentStatus: domain.PaymentStatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}
}

// generateRecurring materializes twelve monthly records sharing one series
// id. Only the first keeps the caller's payment status; a future occurrence
// cannot be pre-marked paid. The full amount repeats on every occurrence.
func (s *TransactionService) generateRecurring(user domain.AuthUser, req dto.CreateTransactionRequest, day time.Time, status domain.PaymentStatus) []domain.Transaction {
	recurrenceID := uuid.NewString()
	txns := make([]domain.Transaction, 0, recurringSeriesLength)
	for i := 0; i < recurringSeriesLength; i++ {
		t := s.newTransaction(user, req, dates.AddMonths(day, i))
		t.IsRecurring = true
		t.RecurrenceID = &recurrenceID
		if i == 0 {
			t.PaymentStatus = status
		}
		txns = append(txns, t)
	}
	return txns
}

// generateInstallments splits the total across monthly parcels numbered
// startInstallment..installments. The per-parcel base is the two-decimal
// floor of total/installments; the last parcel of the whole nominal series
// absorbs the rounding remainder, even when generation starts mid-series.
func (s *TransactionService) generateInstallments(user domain.AuthUser, req dto.CreateTransactionRequest, day time.Time) []domain.Transaction {
	n := req.Installments
	start := req.StartInstallment
	if start < 1 {
		start = 1
	}
	if start > n {
		return nil
	}

	total := req.Amount
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).RoundDown(2)
	last := total.Sub(base.Mul(decimal.NewFromInt(int64(n - 1)))).Round(2)

	installmentID := uuid.NewString()
	txns := make([]domain.Transaction, 0, n-start+1)
	for num := start; num <= n; num++ {
		t := s.newTransaction(user, req, dates.AddMonths(day, num-start))
		t.Description = fmt.Sprintf("%s (%d/%d)", req.Description, num, n)
		t.Amount = base
		if num == n {
			t.Amount = last
		}
		t.InstallmentID = &installmentID
		t.InstallmentNumber = num
		t.TotalInstallments = n
		txns = append(txns, t)
	}
	return txns
}

// UpdateTransaction applies a patch to the target record. Enabling the
// recurring flag on a standalone record converts it into a series. For
// future/all scopes on a series member the allow-listed fields (description,
// amount, category, account, type, recurring flag) reach every sibling, a
// date change propagates as a shift applied to each sibling's own date, and
// payment status never leaves the target.
func (s *TransactionService) UpdateTransaction(ctx context.Context, user domain.AuthUser, transactionID string, req dto.UpdateTransactionRequest, scope domain.UpdateScope) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return err
	}

	target, err := s.findOwned(ctx, repos, user, transactionID)
	if err != nil {
		return err
	}

	var patchDay *time.Time
	if req.Date != nil {
		day, err := dates.ParseDay(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, *req.Date)
		}
		patchDay = &day
	}

	if req.IsRecurring != nil && *req.IsRecurring && target.RecurrenceID == nil {
		return s.convertToRecurring(ctx, repos, user, target, req, patchDay, logger)
	}

	now := time.Now()
	updates := []domain.Transaction{}

	if scope != domain.ScopeSingle && target.IsSeriesMember() {
		siblings, err := s.resolveSiblings(ctx, repos, user, target, scope)
		if err != nil {
			return err
		}
		var shift time.Duration
		if patchDay != nil {
			shift = patchDay.Sub(target.Date)
		}
		for i := range siblings {
			sib := siblings[i]
			if sib.TransactionID == target.TransactionID {
				continue
			}
			applyAllowList(&sib, req)
			if shift != 0 {
				shifted := dates.Normalize(sib.Date.Add(shift))
				sib.Date = shifted
				sib.Month = dates.Month0(shifted)
				sib.Year = dates.Year(shifted)
			}
			sib.LastUpdatedAt = now
			sib.LastUpdatedBy = user.UserID
			updates = append(updates, sib)
		}
	}

	applyAllowList(target, req)
	if patchDay != nil {
		target.Date = *patchDay
		target.Month = dates.Month0(*patchDay)
		target.Year = dates.Year(*patchDay)
	}
	if req.PaymentStatus != nil {
		target.PaymentStatus = *req.PaymentStatus
	}
	target.LastUpdatedAt = now
	target.LastUpdatedBy = user.UserID
	updates = append(updates, *target)

	if err := repos.TransactionRepo.UpdateTransactions(ctx, updates); err != nil {
		logger.Error("Failed to update transaction batch", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("scope", string(scope)),
		slog.Int("records", len(updates)))
	return nil
}

// convertToRecurring mints a series id for a standalone record and
// materializes the eleven forward months. Conversion never additionally
// propagates, whatever scope was requested.
func (s *TransactionService) convertToRecurring(ctx context.Context, repos *portsrepo.Provider, user domain.AuthUser, target *domain.Transaction, req dto.UpdateTransactionRequest, patchDay *time.Time, logger *slog.Logger) error {
	now := time.Now()
	recurrenceID := uuid.NewString()

	applyAllowList(target, req)
	if patchDay != nil {
		target.Date = *patchDay
		target.Month = dates.Month0(*patchDay)
		target.Year = dates.Year(*patchDay)
	}
	if req.PaymentStatus != nil {
		target.PaymentStatus = *req.PaymentStatus
	}
	target.IsRecurring = true
	target.RecurrenceID = &recurrenceID
	target.LastUpdatedAt = now
	target.LastUpdatedBy = user.UserID

	copies := make([]domain.Transaction, 0, recurringSeriesLength-1)
	for i := 1; i < recurringSeriesLength; i++ {
		day := dates.AddMonths(target.Date, i)
		copies = append(copies, domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        user.UserID,
			Description:   target.Description,
			Amount:        target.Amount,
			Date:          day,
			Month:         dates.Month0(day),
			Year:          dates.Year(day),
			Type:          target.Type,
			CategoryID:    target.CategoryID,
			AccountID:     target.AccountID,
			PaymentStatus: domain.PaymentStatusPending,
			IsRecurring:   true,
			RecurrenceID:  &recurrenceID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     user.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: user.UserID,
			},
		})
	}

	if err := repos.TransactionRepo.UpdateTransactions(ctx, []domain.Transaction{*target}); err != nil {
		logger.Error("Failed to update converted transaction", slog.String("error", err.Error()), slog.String("transaction_id", target.TransactionID))
		return err
	}
	if err := repos.TransactionRepo.SaveTransactions(ctx, copies); err != nil {
		logger.Error("Failed to save recurrence copies", slog.String("error", err.Error()), slog.String("recurrence_id", recurrenceID))
		return err
	}

	logger.Info("Transaction converted to recurring series",
		slog.String("transaction_id", target.TransactionID),
		slog.String("recurrence_id", recurrenceID))
	return nil
}

// DeleteTransaction removes the target and, per scope, its series siblings.
// Recurring series resolve the future scope by date; installment series by
// installment number, which survives out-of-order date edits.
func (s *TransactionService) DeleteTransaction(ctx context.Context, user domain.AuthUser, transactionID string, scope domain.UpdateScope) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return err
	}

	target, err := s.findOwned(ctx, repos, user, transactionID)
	if err != nil {
		return err
	}

	ids := []string{target.TransactionID}
	if scope != domain.ScopeSingle && target.IsSeriesMember() {
		siblings, err := s.resolveSiblings(ctx, repos, user, target, scope)
		if err != nil {
			return err
		}
		if len(siblings) > 0 {
			ids = ids[:0]
			for _, sib := range siblings {
				ids = append(ids, sib.TransactionID)
			}
		}
	}

	if err := repos.TransactionRepo.DeleteTransactions(ctx, user.UserID, ids); err != nil {
		logger.Error("Failed to delete transactions", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transactions deleted",
		slog.String("transaction_id", transactionID),
		slog.String("scope", string(scope)),
		slog.Int("records", len(ids)))
	return nil
}

// resolveSiblings returns the series members the scope covers, target
// included. An unrecognized scope narrows to the target alone on either
// series kind.
func (s *TransactionService) resolveSiblings(ctx context.Context, repos *portsrepo.Provider, user domain.AuthUser, target *domain.Transaction, scope domain.UpdateScope) ([]domain.Transaction, error) {
	switch {
	case target.RecurrenceID != nil:
		members, err := repos.TransactionRepo.FindTransactionsByRecurrenceID(ctx, user.UserID, *target.RecurrenceID)
		if err != nil {
			return nil, err
		}
		switch scope {
		case domain.ScopeAll:
			return members, nil
		case domain.ScopeFuture:
			kept := members[:0:0]
			for _, m := range members {
				if !m.Date.Before(target.Date) {
					kept = append(kept, m)
				}
			}
			return kept, nil
		default:
			return []domain.Transaction{*target}, nil
		}
	case target.InstallmentID != nil:
		members, err := repos.TransactionRepo.FindTransactionsByInstallmentID(ctx, user.UserID, *target.InstallmentID)
		if err != nil {
			return nil, err
		}
		switch scope {
		case domain.ScopeAll:
			return members, nil
		case domain.ScopeFuture:
			kept := members[:0:0]
			for _, m := range members {
				if m.InstallmentNumber >= target.InstallmentNumber {
					kept = append(kept, m)
				}
			}
			return kept, nil
		default:
			return []domain.Transaction{*target}, nil
		}
	}
	return []domain.Transaction{*target}, nil
}

// applyAllowList writes the fields that may cross series boundaries. Date
// and payment status are handled separately by the caller.
func applyAllowList(t *domain.Transaction, req dto.UpdateTransactionRequest) {
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.CategoryID != nil {
		t.CategoryID = *req.CategoryID
	}
	if req.AccountID != nil {
		t.AccountID = *req.AccountID
	}
	if req.IsRecurring != nil {
		t.IsRecurring = *req.IsRecurring
	}
}

// GetTransactionByID retrieves one transaction owned by the caller.
func (s *TransactionService) GetTransactionByID(ctx context.Context, user domain.AuthUser, transactionID string) (*domain.Transaction, error) {
	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.findOwned(ctx, repos, user, transactionID)
}

// ListTransactionsByPeriod returns the caller's transactions dated within
// [from, to] inclusive.
func (s *TransactionService) ListTransactionsByPeriod(ctx context.Context, user domain.AuthUser, from, to time.Time) ([]domain.Transaction, error) {
	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	txns, err := repos.TransactionRepo.FindTransactionsByDateRange(ctx, user.UserID, from, to)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *TransactionService) findOwned(ctx context.Context, repos *portsrepo.Provider, user domain.AuthUser, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	target, err := repos.TransactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if target.UserID != user.UserID {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrForbidden, transactionID)
	}
	return target, nil
}
