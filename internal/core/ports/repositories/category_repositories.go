package repositories

import (
	"context"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
)

// CategoryRepository persists categories; consumed by the core for
// validation and grouping only.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error

	// ReplaceAllCategories clears the user's categories and inserts the
	// given set atomically (cloud-to-local sync).
	ReplaceAllCategories(ctx context.Context, userID string, categories []domain.Category) error
}
