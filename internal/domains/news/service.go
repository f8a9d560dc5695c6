package news

import (
	"context"

	"github.com/google/uuid"
)

// Service is the application-layer contract for the news aggregate. Each
// method loads at most the entities it needs, invokes one lifecycle
// operation, persists the full entity state and enriches the result with
// category/tag lookups.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req CreateNewsRequest) (*NewsResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateNewsRequest) (*NewsResponse, error)
	GetBySlug(ctx context.Context, slug string) (*NewsResponse, error)
	List(ctx context.Context, query ListNewsQuery) (*ListNewsResult, error)
	GetFeatured(ctx context.Context, limit int) ([]NewsListItem, error)
	SubmitForReview(ctx context.Context, id uuid.UUID) (*NewsResponse, error)
	Publish(ctx context.Context, id, editorID uuid.UUID) (*NewsResponse, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*NewsResponse, error)
	Archive(ctx context.Context, id uuid.UUID) (*NewsResponse, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*NewsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
