package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money in or money out.
// Transfers are intentionally not modeled.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// PaymentStatus tracks whether the money actually moved. Only paid
// transactions count toward the real (global) balance.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

// UpdateScope is the breadth of an edit or delete on a series member.
type UpdateScope string

const (
	ScopeSingle UpdateScope = "single"
	ScopeFuture UpdateScope = "future"
	ScopeAll    UpdateScope = "all"
)

// Transaction is the central ledger entity. Amount is always the
// per-occurrence value, never a series total, and is never stored negative;
// the sign is implied by Type.
//
// Date is pinned to noon UTC (see utils/dates); Month (0-11) and Year are
// derived, persisted copies of Date's calendar month/year used for range
// query indexing and must always agree with Date.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // Non-negative, 2 decimal places
	Date          time.Time       `json:"date"`
	Month         int             `json:"month"` // 0-11, derived from Date
	Year          int             `json:"year"`  // Derived from Date
	Type          TransactionType `json:"type"`
	CategoryID    string          `json:"categoryID"` // FK -> Category
	AccountID     string          `json:"accountID"`  // FK -> Account
	PaymentStatus PaymentStatus   `json:"paymentStatus"`

	// Recurrence fields, set together or not at all. A recurring series is
	// materialized eagerly as 12 monthly records sharing one RecurrenceID.
	IsRecurring  bool    `json:"isRecurring"`
	RecurrenceID *string `json:"recurrenceID,omitempty"`

	// Installment fields, set together or not at all. Mutually exclusive
	// with the recurrence fields.
	InstallmentID     *string `json:"installmentID,omitempty"`
	InstallmentNumber int     `json:"installmentNumber,omitempty"` // 1..TotalInstallments
	TotalInstallments int     `json:"totalInstallments,omitempty"`

	AuditFields
}

// IsSeriesMember reports whether the transaction belongs to a recurring or
// installment series.
func (t Transaction) IsSeriesMember() bool {
	return t.RecurrenceID != nil || t.InstallmentID != nil
}

// SignedAmount returns the amount with the sign implied by Type.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
