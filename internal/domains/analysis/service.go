package analysis

import (
	"context"

	"github.com/google/uuid"
)

// Service is the application-layer contract for stock analysis. Analysis has
// a narrower lifecycle surface than news: there are no unpublish or archive
// operations.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req CreateAnalysisRequest) (*AnalysisResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAnalysisRequest) (*AnalysisResponse, error)
	GetBySlug(ctx context.Context, slug string) (*AnalysisResponse, error)
	List(ctx context.Context, query ListAnalysisQuery) (*ListAnalysisResult, error)
	GetFeatured(ctx context.Context, limit int) ([]AnalysisListItem, error)
	GetLatestByTicker(ctx context.Context, ticker string, limit int) ([]AnalysisListItem, error)
	SubmitForReview(ctx context.Context, id uuid.UUID) (*AnalysisResponse, error)
	Publish(ctx context.Context, id, editorID uuid.UUID) (*AnalysisResponse, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*AnalysisResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
