package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/google/uuid"
)

// CategoryService owns category master data on whichever store backend
// serves the caller.
type CategoryService struct {
	stores storeSelector
}

func NewCategoryService(stores storeSelector) *CategoryService {
	return &CategoryService{stores: stores}
}

func (s *CategoryService) CreateCategory(ctx context.Context, user domain.AuthUser, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     user.UserID,
		Name:       req.Name,
		Type:       req.Type,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}

	if err := repos.CategoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, user domain.AuthUser, categoryID string) (*domain.Category, error) {
	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	category, err := repos.CategoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != user.UserID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrForbidden, categoryID)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, user domain.AuthUser) ([]domain.Category, error) {
	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	categories, err := repos.CategoryRepo.ListCategories(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, user domain.AuthUser, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	category, err := s.GetCategoryByID(ctx, user, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = *req.Type
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = user.UserID

	if err := repos.CategoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeactivateCategory(ctx context.Context, user domain.AuthUser, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return err
	}
	if _, err := s.GetCategoryByID(ctx, user, categoryID); err != nil {
		return err
	}

	if err := repos.CategoryRepo.DeactivateCategory(ctx, categoryID, user.UserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return err
	}

	logger.Info("Category deactivated", slog.String("category_id", categoryID))
	return nil
}
