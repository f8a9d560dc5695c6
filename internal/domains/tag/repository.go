package tag

import (
	"context"

	"github.com/google/uuid"
)

// PopularTag pairs a tag with its article usage count.
type PopularTag struct {
	Tag        *Tag
	UsageCount int
}

// Repository is the persistence contract for tags.
//
// FindOrCreateByNames resolves a set of display names to tags, creating the
// ones that do not exist yet. Matching is case-insensitive on the name and
// the returned order follows the input order.
type Repository interface {
	Save(ctx context.Context, t *Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindBySlug(ctx context.Context, slug string) (*Tag, error)
	FindAll(ctx context.Context) ([]*Tag, error)
	FindOrCreateByNames(ctx context.Context, names []string) ([]*Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetPopularTags(ctx context.Context, limit int) ([]PopularTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
