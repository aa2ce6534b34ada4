package domain

import "github.com/shopspring/decimal"

// AccountType classifies how an account holds or extends money.
type AccountType string

const (
	Bank   AccountType = "bank"
	Credit AccountType = "credit"
	Ticket AccountType = "ticket"
	Wallet AccountType = "wallet"
	Invest AccountType = "invest"
)

// Account represents a place money lives (or a credit line money is borrowed
// against). The core only reads accounts; balances are derived from paid
// transactions, never stored here.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	UserID    string          `json:"userID"`    // Owning user
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Limit     decimal.Decimal `json:"limit"` // Credit ceiling, zero for non-credit
	IsActive  bool            `json:"isActive"`
	AuditFields
}
