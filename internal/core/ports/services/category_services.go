package services

import (
	"context"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
)

// CategorySvcFacade covers category master data.
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, user domain.AuthUser, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, user domain.AuthUser) ([]domain.Category, error)
	CreateCategory(ctx context.Context, user domain.AuthUser, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, user domain.AuthUser, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeactivateCategory(ctx context.Context, user domain.AuthUser, categoryID string) error
}
