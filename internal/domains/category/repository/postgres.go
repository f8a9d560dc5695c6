package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finpress-backend/internal/domains/category"
)

const categoryColumns = `id, slug, name, description, color, icon, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed category repository.
func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var s category.State
	err := row.Scan(&s.ID, &s.Slug, &s.Name, &s.Description, &s.Color, &s.Icon, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category.Reconstitute(s)
}

// Save upserts the category's current state keyed by id.
func (r *postgresRepository) Save(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, slug, name, description, color, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
		    color = EXCLUDED.color, icon = EXCLUDED.icon, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Slug.String(), c.Name, c.Description, c.Color, c.Icon, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return category.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1 AND deleted_at IS NULL`, categoryColumns)

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category by id: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE slug = $1 AND deleted_at IS NULL`, categoryColumns)

	c, err := scanCategory(r.pool.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category by slug: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE deleted_at IS NULL ORDER BY name`, categoryColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*category.Category, 0, 16)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE categories SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}
