package localstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
)

type localTransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepository = (*localTransactionRepository)(nil)

func (r *localTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, t := range txns {
		if _, exists := r.store.transactions[t.TransactionID]; exists {
			return fmt.Errorf("transaction %s: %w", t.TransactionID, apperrors.ErrDuplicate)
		}
	}
	for _, t := range txns {
		r.store.transactions[t.TransactionID] = t
	}
	return r.store.persist()
}

func (r *localTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return &t, nil
}

func (r *localTransactionRepository) FindTransactionsByRecurrenceID(ctx context.Context, userID, recurrenceID string) ([]domain.Transaction, error) {
	txns := r.filter(func(t domain.Transaction) bool {
		return t.UserID == userID && t.RecurrenceID != nil && *t.RecurrenceID == recurrenceID
	})
	sortByDate(txns)
	return txns, nil
}

func (r *localTransactionRepository) FindTransactionsByInstallmentID(ctx context.Context, userID, installmentID string) ([]domain.Transaction, error) {
	txns := r.filter(func(t domain.Transaction) bool {
		return t.UserID == userID && t.InstallmentID != nil && *t.InstallmentID == installmentID
	})
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].InstallmentNumber < txns[j].InstallmentNumber
	})
	return txns, nil
}

func (r *localTransactionRepository) FindTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	txns := r.filter(func(t domain.Transaction) bool {
		return t.UserID == userID && !t.Date.Before(from) && !t.Date.After(to)
	})
	sortByDate(txns)
	return txns, nil
}

func (r *localTransactionRepository) FindTransactionsByPaymentStatus(ctx context.Context, userID string, status domain.PaymentStatus) ([]domain.Transaction, error) {
	txns := r.filter(func(t domain.Transaction) bool {
		return t.UserID == userID && t.PaymentStatus == status
	})
	sortByDate(txns)
	return txns, nil
}

func (r *localTransactionRepository) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txns := r.filter(func(t domain.Transaction) bool {
		return t.UserID == userID
	})
	sortByDate(txns)
	return txns, nil
}

func (r *localTransactionRepository) UpdateTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Verify the whole batch before touching anything so a missing record
	// cannot leave a partial update behind.
	for _, t := range txns {
		if _, ok := r.store.transactions[t.TransactionID]; !ok {
			return fmt.Errorf("transaction %s: %w", t.TransactionID, apperrors.ErrNotFound)
		}
	}
	for _, t := range txns {
		r.store.transactions[t.TransactionID] = t
	}
	return r.store.persist()
}

func (r *localTransactionRepository) DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range transactionIDs {
		if t, ok := r.store.transactions[id]; ok && t.UserID == userID {
			delete(r.store.transactions, id)
		}
	}
	return r.store.persist()
}

func (r *localTransactionRepository) ReplaceAllTransactions(ctx context.Context, userID string, txns []domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, t := range r.store.transactions {
		if t.UserID == userID {
			delete(r.store.transactions, id)
		}
	}
	for _, t := range txns {
		r.store.transactions[t.TransactionID] = t
	}
	return r.store.persist()
}

func (r *localTransactionRepository) filter(keep func(domain.Transaction) bool) []domain.Transaction {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txns := []domain.Transaction{}
	for _, t := range r.store.transactions {
		if keep(t) {
			txns = append(txns, t)
		}
	}
	return txns
}

func sortByDate(txns []domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].Date.Equal(txns[j].Date) {
			return txns[i].TransactionID < txns[j].TransactionID
		}
		return txns[i].Date.Before(txns[j].Date)
	})
}
