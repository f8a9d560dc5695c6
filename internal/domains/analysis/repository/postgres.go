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

	"finpress-backend/internal/domains/analysis"
	"finpress-backend/pkg/cache"
	"finpress-backend/pkg/database"
	"finpress-backend/pkg/logger"
)

const (
	cacheKeyBySlug = "analysis:slug:%s"
	cacheTTL       = 5 * time.Minute
)

const analysisColumns = `
	id, slug, title, subtitle, content, excerpt, status, is_featured,
	stock_ticker, analysis_type, target_price, category_id,
	featured_image_url, featured_image_alt,
	meta_title, meta_description, meta_keywords,
	author_id, editor_id, view_count, version,
	created_at, updated_at, published_at, archived_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository returns the pgx-backed analysis repository.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) analysis.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanAnalysis(row pgx.Row) (*analysis.Analysis, error) {
	var s analysis.State
	var keywords pq.StringArray

	err := row.Scan(
		&s.ID, &s.Slug, &s.Title, &s.Subtitle, &s.Content, &s.Excerpt,
		&s.Status, &s.IsFeatured,
		&s.Ticker, &s.Type, &s.TargetPrice, &s.CategoryID,
		&s.FeaturedImageURL, &s.FeaturedImageAlt,
		&s.MetaTitle, &s.MetaDescription, &keywords,
		&s.AuthorID, &s.EditorID, &s.ViewCount, &s.Version,
		&s.CreatedAt, &s.UpdatedAt, &s.PublishedAt, &s.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}

	s.MetaKeywords = keywords
	return analysis.Reconstitute(s)
}

// Save persists the entity's full current state with the same
// compare-and-swap rule as the news repository.
func (r *postgresRepository) Save(ctx context.Context, a *analysis.Analysis) error {
	if a.Version == 0 {
		return r.insert(ctx, a)
	}
	return r.update(ctx, a)
}

func (r *postgresRepository) insert(ctx context.Context, a *analysis.Analysis) error {
	query := `
		INSERT INTO analysis (
			id, slug, title, subtitle, content, excerpt, status, is_featured,
			stock_ticker, analysis_type, target_price, category_id,
			featured_image_url, featured_image_alt,
			meta_title, meta_description, meta_keywords,
			author_id, editor_id, view_count, version,
			created_at, updated_at, published_at, archived_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14,
			$15, $16, $17,
			$18, $19, $20, $21,
			$22, $23, $24, $25
		)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Slug.String(), a.Title, a.Subtitle, a.Content, a.Excerpt,
		a.Status.String(), a.IsFeatured,
		a.Ticker.String(), a.Type.String(), a.TargetPrice, a.CategoryID,
		a.FeaturedImageURL, a.FeaturedImageAlt,
		a.MetaTitle, a.MetaDescription, pq.Array([]string(a.MetaKeywords)),
		a.AuthorID, a.EditorID, a.ViewCount, 1,
		a.CreatedAt, a.UpdatedAt, a.PublishedAt, a.ArchivedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return analysis.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	a.Version = 1
	return nil
}

func (r *postgresRepository) update(ctx context.Context, a *analysis.Analysis) error {
	query := `
		UPDATE analysis
		SET slug = $1, title = $2, subtitle = $3, content = $4, excerpt = $5,
		    status = $6, is_featured = $7,
		    stock_ticker = $8, analysis_type = $9, target_price = $10, category_id = $11,
		    featured_image_url = $12, featured_image_alt = $13,
		    meta_title = $14, meta_description = $15, meta_keywords = $16,
		    editor_id = $17, view_count = $18, version = $19,
		    updated_at = $20, published_at = $21, archived_at = $22
		WHERE id = $23 AND version = $24 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query,
		a.Slug.String(), a.Title, a.Subtitle, a.Content, a.Excerpt,
		a.Status.String(), a.IsFeatured,
		a.Ticker.String(), a.Type.String(), a.TargetPrice, a.CategoryID,
		a.FeaturedImageURL, a.FeaturedImageAlt,
		a.MetaTitle, a.MetaDescription, pq.Array([]string(a.MetaKeywords)),
		a.EditorID, a.ViewCount, a.Version+1,
		a.UpdatedAt, a.PublishedAt, a.ArchivedAt,
		a.ID, a.Version,
	)
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return analysis.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to update analysis: %w", err)
	}

	if result.RowsAffected() == 0 {
		return analysis.ErrVersionConflict
	}

	a.Version++
	r.invalidate(ctx, a.Slug.String())
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*analysis.Analysis, error) {
	query := fmt.Sprintf(`SELECT %s FROM analysis WHERE id = $1 AND deleted_at IS NULL`, analysisColumns)

	a, err := scanAnalysis(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, analysis.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis by id: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*analysis.Analysis, error) {
	cacheKey := fmt.Sprintf(cacheKeyBySlug, slug)

	var cached analysis.State
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		if a, err := analysis.Reconstitute(cached); err == nil {
			return a, nil
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM analysis WHERE slug = $1 AND deleted_at IS NULL`, analysisColumns)

	a, err := scanAnalysis(r.pool.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, analysis.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis by slug: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, stateOf(a), cacheTTL); err != nil {
		logger.Warn("analysis cache set failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
	return a, nil
}

func (r *postgresRepository) FindMany(ctx context.Context, filter analysis.Filter) ([]*analysis.Analysis, error) {
	where, args := buildWhere(filter.Status, filter.AuthorID, filter.CategoryID, filter.TagID,
		filter.Ticker, filter.Type, filter.IsFeatured, filter.IncludeDeleted)
	argIndex := len(args) + 1

	if filter.SearchTerm != "" {
		where = append(where, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.SearchTerm+"%")
		argIndex++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("a.created_at >= $%d", argIndex))
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("a.created_at <= $%d", argIndex))
		args = append(args, *filter.DateTo)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s FROM analysis a
		WHERE %s
		ORDER BY a.%s %s
		LIMIT $%d OFFSET $%d
	`, prefixColumns("a"), strings.Join(where, " AND "),
		sortColumn(filter.SortBy), sortDirection(filter.SortOrder),
		argIndex, argIndex+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	return r.queryMany(ctx, query, args...)
}

// FindLatestByTicker returns the most recently published analysis for a
// ticker, newest first.
func (r *postgresRepository) FindLatestByTicker(ctx context.Context, ticker analysis.StockTicker, limit int) ([]*analysis.Analysis, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM analysis a
		WHERE a.stock_ticker = $1 AND a.status = 'PUBLISHED' AND a.deleted_at IS NULL
		ORDER BY a.published_at DESC
		LIMIT $2
	`, prefixColumns("a"))

	return r.queryMany(ctx, query, ticker.String(), limit)
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*analysis.Analysis, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis: %w", err)
	}
	defer rows.Close()

	results := make([]*analysis.Analysis, 0, 16)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			logger.Error("failed to scan analysis row", err)
			continue
		}
		results = append(results, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

func (r *postgresRepository) Count(ctx context.Context, filter analysis.CountFilter) (int, error) {
	where, args := buildWhere(filter.Status, filter.AuthorID, filter.CategoryID, filter.TagID,
		filter.Ticker, filter.Type, filter.IsFeatured, filter.IncludeDeleted)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM analysis a WHERE %s`, strings.Join(where, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count analysis: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM analysis WHERE slug = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check analysis slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE analysis SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return analysis.ErrAnalysisNotFound
	}

	r.invalidateAll(ctx)
	return nil
}

func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM analysis_tags WHERE analysis_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete analysis tags: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM analysis WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to hard delete analysis: %w", err)
		}
		if result.RowsAffected() == 0 {
			return analysis.ErrAnalysisNotFound
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
			DELETE FROM analysis_tags
			WHERE analysis_id IN (SELECT id FROM analysis WHERE deleted_at IS NOT NULL AND deleted_at < $1)
		`
		if _, err := tx.Exec(ctx, query, cutoff); err != nil {
			return fmt.Errorf("failed to purge analysis tags: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM analysis WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
		if err != nil {
			return fmt.Errorf("failed to purge analysis: %w", err)
		}

		purged = result.RowsAffected()
		return nil
	})
	return purged, err
}

func (r *postgresRepository) ReplaceTags(ctx context.Context, analysisID uuid.UUID, tagIDs []uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM analysis_tags WHERE analysis_id = $1`, analysisID); err != nil {
			return fmt.Errorf("failed to clear analysis tags: %w", err)
		}

		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO analysis_tags (analysis_id, tag_id) VALUES ($1, $2)`,
				analysisID, tagID,
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

func (r *postgresRepository) GetTagsForAnalysis(ctx context.Context, analysisID uuid.UUID) ([]analysis.TagRef, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN analysis_tags at ON at.tag_id = t.id
		WHERE at.analysis_id = $1
		ORDER BY t.name
	`

	rows, err := r.pool.Query(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis tags: %w", err)
	}
	defer rows.Close()

	tags := make([]analysis.TagRef, 0, 8)
	for rows.Next() {
		var tag analysis.TagRef
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *postgresRepository) GetCategoryForAnalysis(ctx context.Context, categoryID *uuid.UUID) (*analysis.CategoryRef, error) {
	if categoryID == nil {
		return nil, nil
	}

	query := `SELECT id, name, slug FROM categories WHERE id = $1 AND deleted_at IS NULL`

	var ref analysis.CategoryRef
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
		logger.Warn("analysis cache invalidation failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}

func (r *postgresRepository) invalidateAll(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, "analysis:slug:*"); err != nil {
		logger.Warn("analysis cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func buildWhere(status string, authorID, categoryID, tagID *uuid.UUID, ticker, analysisType string, isFeatured *bool, includeDeleted bool) ([]string, []interface{}) {
	where := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)
	argIndex := 1

	if !includeDeleted {
		where = append(where, "a.deleted_at IS NULL")
	}
	if status != "" {
		where = append(where, fmt.Sprintf("a.status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}
	if authorID != nil {
		where = append(where, fmt.Sprintf("a.author_id = $%d", argIndex))
		args = append(args, *authorID)
		argIndex++
	}
	if categoryID != nil {
		where = append(where, fmt.Sprintf("a.category_id = $%d", argIndex))
		args = append(args, *categoryID)
		argIndex++
	}
	if tagID != nil {
		where = append(where, fmt.Sprintf("a.id IN (SELECT analysis_id FROM analysis_tags WHERE tag_id = $%d)", argIndex))
		args = append(args, *tagID)
		argIndex++
	}
	if ticker != "" {
		where = append(where, fmt.Sprintf("a.stock_ticker = $%d", argIndex))
		args = append(args, ticker)
		argIndex++
	}
	if analysisType != "" {
		where = append(where, fmt.Sprintf("a.analysis_type = $%d", argIndex))
		args = append(args, analysisType)
		argIndex++
	}
	if isFeatured != nil {
		where = append(where, fmt.Sprintf("a.is_featured = $%d", argIndex))
		args = append(args, *isFeatured)
		argIndex++
	}
	if len(where) == 0 {
		where = append(where, "TRUE")
	}
	return where, args
}

func prefixColumns(alias string) string {
	cols := strings.Split(analysisColumns, ",")
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

func stateOf(a *analysis.Analysis) analysis.State {
	return analysis.State{
		ID:             a.ID,
		Slug:           a.Slug.String(),
		Ticker:         a.Ticker.String(),
		Type:           a.Type.String(),
		TargetPrice:    a.TargetPrice,
		CategoryID:     a.CategoryID,
		Version:        a.Version,
		LifecycleState: a.Snapshot(),
	}
}
