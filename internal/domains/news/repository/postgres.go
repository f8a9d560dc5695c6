package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"finpress-backend/internal/domains/news"
	"finpress-backend/pkg/cache"
	"finpress-backend/pkg/database"
	"finpress-backend/pkg/logger"
)

const (
	cacheKeyBySlug = "news:slug:%s"
	cacheTTL       = 5 * time.Minute
)

const newsColumns = `
	id, slug, title, subtitle, content, excerpt, status, is_featured,
	category_id, featured_image_url, featured_image_alt,
	meta_title, meta_description, meta_keywords,
	author_id, editor_id, view_count, version,
	created_at, updated_at, published_at, archived_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository returns the pgx-backed news repository. Single-slug
// reads go through Redis with a short TTL; every write invalidates the
// article's cached entries.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) news.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanNews(row pgx.Row) (*news.News, error) {
	var s news.State
	var keywords pq.StringArray

	err := row.Scan(
		&s.ID, &s.Slug, &s.Title, &s.Subtitle, &s.Content, &s.Excerpt,
		&s.Status, &s.IsFeatured, &s.CategoryID,
		&s.FeaturedImageURL, &s.FeaturedImageAlt,
		&s.MetaTitle, &s.MetaDescription, &keywords,
		&s.AuthorID, &s.EditorID, &s.ViewCount, &s.Version,
		&s.CreatedAt, &s.UpdatedAt, &s.PublishedAt, &s.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}

	s.MetaKeywords = keywords
	return news.Reconstitute(s)
}

// Save persists the entity's full current state. A new entity (version 0) is
// inserted with version 1; an existing one is updated only when the stored
// version still matches, otherwise ErrVersionConflict.
func (r *postgresRepository) Save(ctx context.Context, article *news.News) error {
	if article.Version == 0 {
		return r.insert(ctx, article)
	}
	return r.update(ctx, article)
}

func (r *postgresRepository) insert(ctx context.Context, article *news.News) error {
	query := `
		INSERT INTO news (
			id, slug, title, subtitle, content, excerpt, status, is_featured,
			category_id, featured_image_url, featured_image_alt,
			meta_title, meta_description, meta_keywords,
			author_id, editor_id, view_count, version,
			created_at, updated_at, published_at, archived_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11,
			$12, $13, $14,
			$15, $16, $17, $18,
			$19, $20, $21, $22
		)
	`

	_, err := r.pool.Exec(ctx, query,
		article.ID, article.Slug.String(), article.Title, article.Subtitle,
		article.Content, article.Excerpt, article.Status.String(), article.IsFeatured,
		article.CategoryID, article.FeaturedImageURL, article.FeaturedImageAlt,
		article.MetaTitle, article.MetaDescription, pq.Array([]string(article.MetaKeywords)),
		article.AuthorID, article.EditorID, article.ViewCount, 1,
		article.CreatedAt, article.UpdatedAt, article.PublishedAt, article.ArchivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return news.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to insert news: %w", err)
	}

	article.Version = 1
	return nil
}

func (r *postgresRepository) update(ctx context.Context, article *news.News) error {
	query := `
		UPDATE news
		SET slug = $1, title = $2, subtitle = $3, content = $4, excerpt = $5,
		    status = $6, is_featured = $7, category_id = $8,
		    featured_image_url = $9, featured_image_alt = $10,
		    meta_title = $11, meta_description = $12, meta_keywords = $13,
		    editor_id = $14, view_count = $15, version = $16,
		    updated_at = $17, published_at = $18, archived_at = $19
		WHERE id = $20 AND version = $21 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query,
		article.Slug.String(), article.Title, article.Subtitle, article.Content, article.Excerpt,
		article.Status.String(), article.IsFeatured, article.CategoryID,
		article.FeaturedImageURL, article.FeaturedImageAlt,
		article.MetaTitle, article.MetaDescription, pq.Array([]string(article.MetaKeywords)),
		article.EditorID, article.ViewCount, article.Version+1,
		article.UpdatedAt, article.PublishedAt, article.ArchivedAt,
		article.ID, article.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return news.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to update news: %w", err)
	}

	if result.RowsAffected() == 0 {
		return news.ErrVersionConflict
	}

	article.Version++
	r.invalidate(ctx, article.Slug.String())
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*news.News, error) {
	query := fmt.Sprintf(`SELECT %s FROM news WHERE id = $1 AND deleted_at IS NULL`, newsColumns)

	article, err := scanNews(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, news.ErrNewsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find news by id: %w", err)
	}
	return article, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*news.News, error) {
	cacheKey := fmt.Sprintf(cacheKeyBySlug, slug)

	var cached news.State
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		if article, err := news.Reconstitute(cached); err == nil {
			return article, nil
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM news WHERE slug = $1 AND deleted_at IS NULL`, newsColumns)

	article, err := scanNews(r.pool.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, news.ErrNewsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find news by slug: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, stateOf(article), cacheTTL); err != nil {
		logger.Warn("news cache set failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
	return article, nil
}

func (r *postgresRepository) FindMany(ctx context.Context, filter news.Filter) ([]*news.News, error) {
	where, args := buildWhere(
		filter.Status, filter.AuthorID, filter.CategoryID, filter.TagID,
		filter.IsFeatured, filter.IncludeDeleted,
	)
	argIndex := len(args) + 1

	if filter.SearchTerm != "" {
		where = append(where, fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.SearchTerm+"%")
		argIndex++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("n.created_at >= $%d", argIndex))
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("n.created_at <= $%d", argIndex))
		args = append(args, *filter.DateTo)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s FROM news n
		WHERE %s
		ORDER BY n.%s %s
		LIMIT $%d OFFSET $%d
	`, prefixColumns("n"), strings.Join(where, " AND "),
		sortColumn(filter.SortBy), sortDirection(filter.SortOrder),
		argIndex, argIndex+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	articles := make([]*news.News, 0, filter.Limit)
	for rows.Next() {
		article, err := scanNews(rows)
		if err != nil {
			logger.Error("failed to scan news row", err)
			continue
		}
		articles = append(articles, article)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return articles, nil
}

func (r *postgresRepository) Count(ctx context.Context, filter news.CountFilter) (int, error) {
	where, args := buildWhere(
		filter.Status, filter.AuthorID, filter.CategoryID, filter.TagID,
		filter.IsFeatured, filter.IncludeDeleted,
	)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM news n WHERE %s`, strings.Join(where, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count news: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM news WHERE slug = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check news slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE news SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if result.RowsAffected() == 0 {
		return news.ErrNewsNotFound
	}

	r.invalidateAll(ctx)
	return nil
}

func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM news_tags WHERE news_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete news tags: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to hard delete news: %w", err)
		}
		if result.RowsAffected() == 0 {
			return news.ErrNewsNotFound
		}
		return nil
	})
}

// PurgeDeletedBefore hard-deletes rows whose soft-delete marker predates the
// cutoff. Used by the scheduled cleanup job.
func (r *postgresRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			DELETE FROM news_tags
			WHERE news_id IN (SELECT id FROM news WHERE deleted_at IS NOT NULL AND deleted_at < $1)
		`
		if _, err := tx.Exec(ctx, query, cutoff); err != nil {
			return fmt.Errorf("failed to purge news tags: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM news WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
		if err != nil {
			return fmt.Errorf("failed to purge news: %w", err)
		}

		purged = result.RowsAffected()
		return nil
	})
	return purged, err
}

// ReplaceTags swaps the article's whole tag set inside one transaction so
// readers never observe a partially retagged article.
func (r *postgresRepository) ReplaceTags(ctx context.Context, newsID uuid.UUID, tagIDs []uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM news_tags WHERE news_id = $1`, newsID); err != nil {
			return fmt.Errorf("failed to clear news tags: %w", err)
		}

		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO news_tags (news_id, tag_id) VALUES ($1, $2)`,
				newsID, tagID,
			)
			if err != nil {
				return fmt.Errorf("failed to attach tag: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateAll(ctx)
	return nil
}

func (r *postgresRepository) GetTagsForNews(ctx context.Context, newsID uuid.UUID) ([]news.TagRef, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN news_tags nt ON nt.tag_id = t.id
		WHERE nt.news_id = $1
		ORDER BY t.name
	`

	rows, err := r.pool.Query(ctx, query, newsID)
	if err != nil {
		return nil, fmt.Errorf("failed to load news tags: %w", err)
	}
	defer rows.Close()

	tags := make([]news.TagRef, 0, 8)
	for rows.Next() {
		var tag news.TagRef
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *postgresRepository) GetCategoryForNews(ctx context.Context, categoryID *uuid.UUID) (*news.CategoryRef, error) {
	if categoryID == nil {
		return nil, nil
	}

	query := `SELECT id, name, slug FROM categories WHERE id = $1 AND deleted_at IS NULL`

	var ref news.CategoryRef
	err := r.pool.QueryRow(ctx, query, *categoryID).Scan(&ref.ID, &ref.Name, &ref.Slug)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &ref, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, slug string) {
	if err := r.cache.Delete(ctx, fmt.Sprintf(cacheKeyBySlug, slug)); err != nil {
		logger.Warn("news cache invalidation failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}

func (r *postgresRepository) invalidateAll(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, "news:slug:*"); err != nil {
		logger.Warn("news cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func buildWhere(status string, authorID, categoryID, tagID *uuid.UUID, isFeatured *bool, includeDeleted bool) ([]string, []interface{}) {
	where := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)
	argIndex := 1

	if !includeDeleted {
		where = append(where, "n.deleted_at IS NULL")
	}
	if status != "" {
		where = append(where, fmt.Sprintf("n.status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}
	if authorID != nil {
		where = append(where, fmt.Sprintf("n.author_id = $%d", argIndex))
		args = append(args, *authorID)
		argIndex++
	}
	if categoryID != nil {
		where = append(where, fmt.Sprintf("n.category_id = $%d", argIndex))
		args = append(args, *categoryID)
		argIndex++
	}
	if tagID != nil {
		where = append(where, fmt.Sprintf("n.id IN (SELECT news_id FROM news_tags WHERE tag_id = $%d)", argIndex))
		args = append(args, *tagID)
		argIndex++
	}
	if isFeatured != nil {
		where = append(where, fmt.Sprintf("n.is_featured = $%d", argIndex))
		args = append(args, *isFeatured)
		argIndex++
	}
	if len(where) == 0 {
		where = append(where, "TRUE")
	}
	return where, args
}

func prefixColumns(alias string) string {
	cols := strings.Split(newsColumns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

var allowedSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"published_at": true,
	"view_count":   true,
	"title":        true,
}

func sortColumn(column string) string {
	if allowedSortColumns[column] {
		return column
	}
	return "created_at"
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func stateOf(article *news.News) news.State {
	return news.State{
		ID:             article.ID,
		Slug:           article.Slug.String(),
		CategoryID:     article.CategoryID,
		Version:        article.Version,
		LifecycleState: article.Snapshot(),
	}
}
