package repositories

import (
	"context"

	"github.com/financas-app/financas_backend/internal/core/domain"
)

// UserRepository persists users. Users always live in the cloud store;
// the capability flag on the profile decides which store the rest of the
// data lives in.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}
