package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
	"github.com/financas-app/financas_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, description, amount, date, month, year, type, category_id, account_id, payment_status, is_recurring, recurrence_id, installment_id, installment_number, total_installments, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionSQL = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
`

const updateTransactionSQL = `
	UPDATE transactions
	SET description = $3, amount = $4, date = $5, month = $6, year = $7, type = $8,
	    category_id = $9, account_id = $10, payment_status = $11, is_recurring = $12,
	    recurrence_id = $13, installment_id = $14, installment_number = $15,
	    total_installments = $16, last_updated_at = $17, last_updated_by = $18
	WHERE transaction_id = $1 AND user_id = $2;
`

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		UserID:            d.UserID,
		Description:       d.Description,
		Amount:            d.Amount,
		Date:              d.Date,
		Month:             d.Month,
		Year:              d.Year,
		Type:              string(d.Type),
		CategoryID:        d.CategoryID,
		AccountID:         d.AccountID,
		PaymentStatus:     string(d.PaymentStatus),
		IsRecurring:       d.IsRecurring,
		RecurrenceID:      d.RecurrenceID,
		InstallmentID:     d.InstallmentID,
		InstallmentNumber: d.InstallmentNumber,
		TotalInstallments: d.TotalInstallments,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		UserID:            m.UserID,
		Description:       m.Description,
		Amount:            m.Amount,
		Date:              m.Date.UTC(),
		Month:             m.Month,
		Year:              m.Year,
		Type:              domain.TransactionType(m.Type),
		CategoryID:        m.CategoryID,
		AccountID:         m.AccountID,
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		IsRecurring:       m.IsRecurring,
		RecurrenceID:      m.RecurrenceID,
		InstallmentID:     m.InstallmentID,
		InstallmentNumber: m.InstallmentNumber,
		TotalInstallments: m.TotalInstallments,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func insertArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID, m.UserID, m.Description, m.Amount, m.Date, m.Month, m.Year,
		m.Type, m.CategoryID, m.AccountID, m.PaymentStatus, m.IsRecurring,
		m.RecurrenceID, m.InstallmentID, m.InstallmentNumber, m.TotalInstallments,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveTransactions inserts the batch inside one database transaction so a
// generated series is all-or-nothing.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, t := range txns {
		batch.Queue(insertTransactionSQL, insertArgs(toModelTransaction(t))...)
	}

	br := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert transaction batch: %w", translateError(err))
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch: %w", translateError(err))
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, translateError(err))
	}

	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan transaction %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

func (r *PgxTransactionRepository) FindTransactionsByRecurrenceID(ctx context.Context, userID, recurrenceID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND recurrence_id = $2 ORDER BY date ASC;`
	return r.queryTransactions(ctx, query, userID, recurrenceID)
}

func (r *PgxTransactionRepository) FindTransactionsByInstallmentID(ctx context.Context, userID, installmentID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND installment_id = $2 ORDER BY installment_number ASC;`
	return r.queryTransactions(ctx, query, userID, installmentID)
}

func (r *PgxTransactionRepository) FindTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date ASC;`
	return r.queryTransactions(ctx, query, userID, from, to)
}

func (r *PgxTransactionRepository) FindTransactionsByPaymentStatus(ctx context.Context, userID string, status domain.PaymentStatus) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND payment_status = $2 ORDER BY date ASC;`
	return r.queryTransactions(ctx, query, userID, string(status))
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date ASC;`
	return r.queryTransactions(ctx, query, userID)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", translateError(err))
	}

	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	txns := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		txns[i] = toDomainTransaction(m)
	}
	return txns, nil
}

// UpdateTransactions applies full-record updates inside one database
// transaction. A record that matches no row fails the whole batch.
func (r *PgxTransactionRepository) UpdateTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, t := range txns {
		m := toModelTransaction(t)
		batch.Queue(updateTransactionSQL,
			m.TransactionID, m.UserID, m.Description, m.Amount, m.Date, m.Month, m.Year,
			m.Type, m.CategoryID, m.AccountID, m.PaymentStatus, m.IsRecurring,
			m.RecurrenceID, m.InstallmentID, m.InstallmentNumber, m.TotalInstallments,
			m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for _, t := range txns {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return fmt.Errorf("failed to update transaction batch: %w", translateError(err))
		}
		if tag.RowsAffected() == 0 {
			br.Close()
			return fmt.Errorf("transaction %s: %w", t.TransactionID, apperrors.ErrNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close update batch: %w", translateError(err))
	}

	return r.Commit(ctx, tx)
}

// DeleteTransactions removes the given records. Already-absent ids are not
// an error.
func (r *PgxTransactionRepository) DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}

	query := `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = ANY($2);`
	if _, err := r.Pool.Exec(ctx, query, userID, transactionIDs); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", translateError(err))
	}
	return nil
}

// ReplaceAllTransactions swaps the user's whole transaction set atomically.
func (r *PgxTransactionRepository) ReplaceAllTransactions(ctx context.Context, userID string, txns []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", translateError(err))
	}

	batch := &pgx.Batch{}
	for _, t := range txns {
		batch.Queue(insertTransactionSQL, insertArgs(toModelTransaction(t))...)
	}
	br := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to reinsert transactions: %w", translateError(err))
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close replace batch: %w", translateError(err))
	}

	return r.Commit(ctx, tx)
}
