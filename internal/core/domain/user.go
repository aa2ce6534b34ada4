package domain

// UserRole distinguishes ordinary users from administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is an authenticated owner of accounts, categories and transactions.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	// CanSync selects the cloud-backed store for this user. Users without
	// the capability operate against the local store only.
	CanSync  bool `json:"canSync"`
	IsActive bool `json:"isActive"`
	AuditFields
}

// AuthUser is the request-scoped identity the auth collaborator exposes to
// the core: who is calling and which store capability they hold. The core
// must branch on CanSync only, never on how the session was established.
type AuthUser struct {
	UserID  string
	CanSync bool
}
