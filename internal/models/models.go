// Package models contains the database row representations of the domain
// entities. Repositories convert between these and the domain types so the
// storage shape can drift without touching the core.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	UserID            string          `db:"user_id"`
	Description       string          `db:"description"`
	Amount            decimal.Decimal `db:"amount"`
	Date              time.Time       `db:"date"`
	Month             int             `db:"month"`
	Year              int             `db:"year"`
	Type              string          `db:"type"`
	CategoryID        string          `db:"category_id"`
	AccountID         string          `db:"account_id"`
	PaymentStatus     string          `db:"payment_status"`
	IsRecurring       bool            `db:"is_recurring"`
	RecurrenceID      *string         `db:"recurrence_id"`
	InstallmentID     *string         `db:"installment_id"`
	InstallmentNumber int             `db:"installment_number"`
	TotalInstallments int             `db:"total_installments"`
	AuditFields
}

type Account struct {
	AccountID string          `db:"account_id"`
	UserID    string          `db:"user_id"`
	Name      string          `db:"name"`
	Type      string          `db:"account_type"`
	Limit     decimal.Decimal `db:"credit_limit"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}

type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Type       string `db:"category_type"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CanSync      bool   `db:"can_sync"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
