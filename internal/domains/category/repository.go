package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for categories. Finds exclude
// soft-deleted rows; Delete stamps the soft-delete marker.
type Repository interface {
	Save(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
