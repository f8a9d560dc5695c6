package tag

import (
	"context"

	"github.com/google/uuid"
)

// Service is the application-layer contract for tags.
type Service interface {
	Create(ctx context.Context, req CreateTagRequest) (*TagResponse, error)
	List(ctx context.Context) ([]TagResponse, error)
	GetBySlug(ctx context.Context, slug string) (*TagResponse, error)
	GetPopular(ctx context.Context, limit int) ([]PopularTagResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
