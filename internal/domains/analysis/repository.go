package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter drives paginated, filtered listing.
type Filter struct {
	Page  int
	Limit int

	Status     string
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	TagID      *uuid.UUID
	Ticker     string
	Type       string
	SearchTerm string
	IsFeatured *bool
	DateFrom   *time.Time
	DateTo     *time.Time

	SortBy    string
	SortOrder string

	IncludeDeleted bool
}

// CountFilter mirrors the filterable subset used for totals.
type CountFilter struct {
	Status         string
	AuthorID       *uuid.UUID
	CategoryID     *uuid.UUID
	TagID          *uuid.UUID
	Ticker         string
	Type           string
	IsFeatured     *bool
	IncludeDeleted bool
}

// TagRef and CategoryRef are lightweight association rows returned by the
// repository for response enrichment.
type TagRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Repository is the persistence contract for stock analysis. The same save
// and soft-delete semantics as the news repository apply: Save is a
// version-guarded upsert and finds exclude soft-deleted rows.
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	FindByID(ctx context.Context, id uuid.UUID) (*Analysis, error)
	FindBySlug(ctx context.Context, slug string) (*Analysis, error)
	FindMany(ctx context.Context, filter Filter) ([]*Analysis, error)
	FindLatestByTicker(ctx context.Context, ticker StockTicker, limit int) ([]*Analysis, error)
	Count(ctx context.Context, filter CountFilter) (int, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	ReplaceTags(ctx context.Context, analysisID uuid.UUID, tagIDs []uuid.UUID) error
	GetTagsForAnalysis(ctx context.Context, analysisID uuid.UUID) ([]TagRef, error)
	GetCategoryForAnalysis(ctx context.Context, categoryID *uuid.UUID) (*CategoryRef, error)
}
