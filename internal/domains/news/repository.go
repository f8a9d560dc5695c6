package news

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
	SearchTerm string
	IsFeatured *bool
	DateFrom   *time.Time
	DateTo     *time.Time

	SortBy    string // created_at, published_at, updated_at, view_count, title
	SortOrder string // asc, desc

	IncludeDeleted bool
}

// CountFilter mirrors the filterable subset used for totals.
type CountFilter struct {
	Status         string
	AuthorID       *uuid.UUID
	CategoryID     *uuid.UUID
	TagID          *uuid.UUID
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

// Repository is the persistence contract for news articles.
//
// Save is an upsert of the entity's complete current state, guarded by a
// version compare-and-swap: saving a stale entity returns
// ErrVersionConflict. Finds exclude soft-deleted rows unless the filter says
// otherwise. Delete stamps the soft-delete marker; HardDelete is
// irreversible.
type Repository interface {
	Save(ctx context.Context, article *News) error
	FindByID(ctx context.Context, id uuid.UUID) (*News, error)
	FindBySlug(ctx context.Context, slug string) (*News, error)
	FindMany(ctx context.Context, filter Filter) ([]*News, error)
	Count(ctx context.Context, filter CountFilter) (int, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// ReplaceTags swaps the article's whole tag-association set in one
	// transaction.
	ReplaceTags(ctx context.Context, newsID uuid.UUID, tagIDs []uuid.UUID) error
	GetTagsForNews(ctx context.Context, newsID uuid.UUID) ([]TagRef, error)
	GetCategoryForNews(ctx context.Context, categoryID *uuid.UUID) (*CategoryRef, error)
}
