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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService owns account master data on whichever store backend serves
// the caller.
type AccountService struct {
	stores storeSelector
}

func NewAccountService(stores storeSelector) *AccountService {
	return &AccountService{stores: stores}
}

func (s *AccountService) CreateAccount(ctx context.Context, user domain.AuthUser, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	if req.Limit.IsNegative() {
		return nil, fmt.Errorf("%w: limit cannot be negative", apperrors.ErrValidation)
	}
	limit := req.Limit
	if req.Type != domain.Credit {
		limit = decimal.Zero
	}

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    user.UserID,
		Name:      req.Name,
		Type:      req.Type,
		Limit:     limit,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}

	if err := repos.AccountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, user domain.AuthUser, accountID string) (*domain.Account, error) {
	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	account, err := repos.AccountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != user.UserID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accountID)
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, user domain.AuthUser) ([]domain.Account, error) {
	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	accounts, err := repos.AccountRepo.ListAccounts(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, user domain.AuthUser, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	account, err := s.GetAccountByID(ctx, user, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.Limit != nil {
		if req.Limit.IsNegative() {
			return nil, fmt.Errorf("%w: limit cannot be negative", apperrors.ErrValidation)
		}
		account.Limit = *req.Limit
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = user.UserID

	if err := repos.AccountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *AccountService) DeactivateAccount(ctx context.Context, user domain.AuthUser, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return err
	}
	if _, err := s.GetAccountByID(ctx, user, accountID); err != nil {
		return err
	}

	if err := repos.AccountRepo.DeactivateAccount(ctx, accountID, user.UserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
