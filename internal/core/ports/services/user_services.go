package services

import (
	"context"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
)

// UserSvcFacade is the auth collaborator's service surface: registration,
// credential verification and identity lookup.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies credentials and returns the user, or
	// apperrors.ErrForbidden on a mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
