package category

import (
	"context"

	"github.com/google/uuid"
)

// Service is the application-layer contract for categories.
type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error)
	List(ctx context.Context) ([]CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
