package repositories

import (
	"context"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
)

// AccountRepository persists accounts. The lifecycle engine only reads them;
// create/update/deactivate serve the master-data HTTP surface.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// ReplaceAllAccounts clears the user's accounts and inserts the given
	// set atomically (cloud-to-local sync).
	ReplaceAllAccounts(ctx context.Context, userID string, accounts []domain.Account) error
}
