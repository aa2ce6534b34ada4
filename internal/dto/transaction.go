package dto

import (
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the user-submitted intent the generator
// expands. Amount is always the series TOTAL; splitting into parcels is the
// generator's job, never the caller's.
type CreateTransactionRequest struct {
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Date          string                 `json:"date" binding:"required,daystring"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	CategoryID    string                 `json:"categoryID" binding:"required"`
	AccountID     string                 `json:"accountID" binding:"required"`
	PaymentStatus domain.PaymentStatus   `json:"paymentStatus" binding:"omitempty,oneof=paid pending"`

	IsRecurring bool `json:"isRecurring"`
	// Installments above 1 turns an expense intent into an installment
	// series; StartInstallment supports entering a purchase mid-series.
	Installments     int `json:"installments" binding:"omitempty,min=1"`
	StartInstallment int `json:"startInstallment" binding:"omitempty,min=1"`
}

// UpdateTransactionRequest is a partial patch. Pointers distinguish
// "not provided" from zero values, which matters for propagation.
type UpdateTransactionRequest struct {
	Description   *string                 `json:"description"`
	Amount        *decimal.Decimal        `json:"amount"`
	Date          *string                 `json:"date" binding:"omitempty,daystring"`
	Type          *domain.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	CategoryID    *string                 `json:"categoryID"`
	AccountID     *string                 `json:"accountID"`
	PaymentStatus *domain.PaymentStatus   `json:"paymentStatus" binding:"omitempty,oneof=paid pending"`
	IsRecurring   *bool                   `json:"isRecurring"`
}

// TransactionResponse mirrors domain.Transaction for the API surface.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	Description       string                 `json:"description"`
	Amount            decimal.Decimal        `json:"amount"`
	Date              string                 `json:"date"`
	Month             int                    `json:"month"`
	Year              int                    `json:"year"`
	Type              domain.TransactionType `json:"type"`
	CategoryID        string                 `json:"categoryID"`
	AccountID         string                 `json:"accountID"`
	PaymentStatus     domain.PaymentStatus   `json:"paymentStatus"`
	IsRecurring       bool                   `json:"isRecurring"`
	RecurrenceID      *string                `json:"recurrenceID,omitempty"`
	InstallmentID     *string                `json:"installmentID,omitempty"`
	InstallmentNumber int                    `json:"installmentNumber,omitempty"`
	TotalInstallments int                    `json:"totalInstallments,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		Description:       t.Description,
		Amount:            t.Amount,
		Date:              dates.FormatDay(t.Date),
		Month:             t.Month,
		Year:              t.Year,
		Type:              t.Type,
		CategoryID:        t.CategoryID,
		AccountID:         t.AccountID,
		PaymentStatus:     t.PaymentStatus,
		IsRecurring:       t.IsRecurring,
		RecurrenceID:      t.RecurrenceID,
		InstallmentID:     t.InstallmentID,
		InstallmentNumber: t.InstallmentNumber,
		TotalInstallments: t.TotalInstallments,
		CreatedAt:         t.CreatedAt,
		LastUpdatedAt:     t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams selects the month window to list.
type ListTransactionsParams struct {
	Year   int `form:"year" binding:"required"`
	Month0 int `form:"month0" binding:"min=0,max=11"`
}

// ListTransactionsResponse wraps the listed transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
