package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finpress-backend/internal/domains/tag"
	"finpress-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed tag repository.
func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Save(ctx context.Context, t *tag.Tag) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tags (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.Slug.String(), t.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return tag.ErrTagAlreadyExists
		}
		return fmt.Errorf("failed to save tag: %w", err)
	}
	return nil
}

func scanTag(row pgx.Row) (*tag.Tag, error) {
	var s tag.State
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.CreatedAt); err != nil {
		return nil, err
	}
	return tag.Reconstitute(s)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	query := `SELECT id, name, slug, created_at FROM tags WHERE id = $1`

	t, err := scanTag(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag by id: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	query := `SELECT id, name, slug, created_at FROM tags WHERE slug = $1`

	t, err := scanTag(r.pool.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag by slug: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	query := `SELECT id, name, slug, created_at FROM tags ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*tag.Tag, 0, 32)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// FindOrCreateByNames resolves names to tags inside one transaction, creating
// missing ones. Lookup is case-insensitive; creation preserves the caller's
// casing. Duplicate and blank names in the input are collapsed.
func (r *postgresRepository) FindOrCreateByNames(ctx context.Context, names []string) ([]*tag.Tag, error) {
	resolved := make([]*tag.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, name := range names {
			trimmed := strings.TrimSpace(name)
			key := strings.ToLower(trimmed)
			if trimmed == "" || seen[key] {
				continue
			}
			seen[key] = true

			t, err := scanTag(tx.QueryRow(ctx,
				`SELECT id, name, slug, created_at FROM tags WHERE LOWER(name) = LOWER($1)`,
				trimmed,
			))
			if err == nil {
				resolved = append(resolved, t)
				continue
			}
			if err != pgx.ErrNoRows {
				return fmt.Errorf("failed to look up tag: %w", err)
			}

			created, err := tag.New(uuid.New(), trimmed)
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx,
				`INSERT INTO tags (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`,
				created.ID, created.Name, created.Slug.String(), created.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}
			resolved = append(resolved, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1))`,
		strings.TrimSpace(name),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check tag name: %w", err)
	}
	return exists, nil
}

// GetPopularTags counts usage across both news and analysis associations.
func (r *postgresRepository) GetPopularTags(ctx context.Context, limit int) ([]tag.PopularTag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at,
		       (SELECT COUNT(*) FROM news_tags nt WHERE nt.tag_id = t.id) +
		       (SELECT COUNT(*) FROM analysis_tags at WHERE at.tag_id = t.id) AS usage_count
		FROM tags t
		ORDER BY usage_count DESC, t.name
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular tags: %w", err)
	}
	defer rows.Close()

	popular := make([]tag.PopularTag, 0, limit)
	for rows.Next() {
		var s tag.State
		var count int
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.CreatedAt, &count); err != nil {
			return nil, fmt.Errorf("failed to scan popular tag: %w", err)
		}
		t, err := tag.Reconstitute(s)
		if err != nil {
			return nil, err
		}
		popular = append(popular, tag.PopularTag{Tag: t, UsageCount: count})
	}
	return popular, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM news_tags WHERE tag_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach tag: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM analysis_tags WHERE tag_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach tag: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		if result.RowsAffected() == 0 {
			return tag.ErrTagNotFound
		}
		return nil
	})
}
