package repositories

import (
	"context"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
)

// TransactionRepository is the Store contract the lifecycle engine consumes.
// Both backends (Postgres and the local file store) satisfy it identically.
//
// Batch methods are atomic: either every record in the batch is applied or
// none is, using the store's native multi-record transaction facility.
type TransactionRepository interface {
	// SaveTransactions inserts a batch of new transactions atomically.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// FindTransactionByID returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByRecurrenceID returns every member of a recurring
	// series, sorted by date ascending.
	FindTransactionsByRecurrenceID(ctx context.Context, userID, recurrenceID string) ([]domain.Transaction, error)

	// FindTransactionsByInstallmentID returns every member of an
	// installment series, sorted by installment number ascending.
	FindTransactionsByInstallmentID(ctx context.Context, userID, installmentID string) ([]domain.Transaction, error)

	// FindTransactionsByDateRange returns transactions with date in
	// [from, to] inclusive, sorted by date ascending.
	FindTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)

	// FindTransactionsByPaymentStatus returns every transaction of the user
	// with the given status, unscoped by period.
	FindTransactionsByPaymentStatus(ctx context.Context, userID string, status domain.PaymentStatus) ([]domain.Transaction, error)

	// ListTransactions returns every transaction of the user.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// UpdateTransactions applies a batch of full-record updates atomically.
	// A missing record fails the whole batch with apperrors.ErrNotFound.
	UpdateTransactions(ctx context.Context, txns []domain.Transaction) error

	// DeleteTransactions removes the given records atomically. IDs that are
	// already absent are ignored.
	DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) error

	// ReplaceAllTransactions clears the user's transactions and inserts the
	// given set in one atomic operation (cloud-to-local sync).
	ReplaceAllTransactions(ctx context.Context, userID string, txns []domain.Transaction) error
}
