package dto

import (
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates a new account for the caller.
type CreateAccountRequest struct {
	Name  string             `json:"name" binding:"required"`
	Type  domain.AccountType `json:"type" binding:"required,oneof=bank credit ticket wallet invest"`
	Limit decimal.Decimal    `json:"limit"`
}

// UpdateAccountRequest is a partial patch over an existing account.
type UpdateAccountRequest struct {
	Name  *string             `json:"name"`
	Type  *domain.AccountType `json:"type" binding:"omitempty,oneof=bank credit ticket wallet invest"`
	Limit *decimal.Decimal    `json:"limit"`
}

// AccountResponse mirrors domain.Account for the API surface.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	Limit         decimal.Decimal    `json:"limit"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Name:          a.Name,
		Type:          a.Type,
		Limit:         a.Limit,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
