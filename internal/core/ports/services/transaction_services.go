package services

import (
	"context"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
)

// TransactionWriterSvc covers the lifecycle mutations: intent expansion,
// series propagation and series deletion.
type TransactionWriterSvc interface {
	// CreateTransaction expands one submitted intent into one or many
	// persisted records (single, recurring series or installment series)
	// and writes them as one atomic batch.
	CreateTransaction(ctx context.Context, user domain.AuthUser, req dto.CreateTransactionRequest) ([]domain.Transaction, error)

	// UpdateTransaction applies a patch to the target record and, per
	// scope, propagates the allow-listed fields across its series.
	UpdateTransaction(ctx context.Context, user domain.AuthUser, transactionID string, req dto.UpdateTransactionRequest, scope domain.UpdateScope) error

	// DeleteTransaction removes the target and, per scope, its series
	// siblings.
	DeleteTransaction(ctx context.Context, user domain.AuthUser, transactionID string, scope domain.UpdateScope) error
}

// TransactionReaderSvc covers reads consumed by the UI layer.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one transaction.
	GetTransactionByID(ctx context.Context, user domain.AuthUser, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByPeriod returns transactions dated within
	// [from, to] inclusive, sorted by date.
	ListTransactionsByPeriod(ctx context.Context, user domain.AuthUser, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionSvcFacade combines the lifecycle engine's service interfaces.
type TransactionSvcFacade interface {
	TransactionWriterSvc
	TransactionReaderSvc
}
