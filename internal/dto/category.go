package dto

import (
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
)

// CreateCategoryRequest creates a new category for the caller.
type CreateCategoryRequest struct {
	Name string                 `json:"name" binding:"required"`
	Type domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
}

// UpdateCategoryRequest is a partial patch over an existing category.
type UpdateCategoryRequest struct {
	Name *string                 `json:"name"`
	Type *domain.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
}

// CategoryResponse mirrors domain.Category for the API surface.
type CategoryResponse struct {
	CategoryID    string                 `json:"categoryID"`
	Name          string                 `json:"name"`
	Type          domain.TransactionType `json:"type"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Type:          c.Type,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
