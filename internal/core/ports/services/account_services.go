package services

import (
	"context"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, user domain.AuthUser, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, user domain.AuthUser) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, user domain.AuthUser, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, user domain.AuthUser, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, user domain.AuthUser, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
