package domain

// Category groups transactions for reporting. Its Type constrains which
// transaction types it may be attached to.
type Category struct {
	CategoryID string          `json:"categoryID"` // Primary Key (UUID)
	UserID     string          `json:"userID"`     // Owning user
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"` // income or expense
	IsActive   bool            `json:"isActive"`
	AuditFields
}
