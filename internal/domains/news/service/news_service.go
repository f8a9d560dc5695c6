package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/category"
	"finpress-backend/internal/domains/content"
	"finpress-backend/internal/domains/news"
	"finpress-backend/internal/domains/tag"
	"finpress-backend/pkg/logger"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type newsService struct {
	repo       news.Repository
	categories category.Repository
	tags       tag.Repository
}

// NewNewsService wires the news application service.
func NewNewsService(repo news.Repository, categories category.Repository, tags tag.Repository) news.Service {
	return &newsService{repo: repo, categories: categories, tags: tags}
}

func (s *newsService) Create(ctx context.Context, authorID uuid.UUID, req news.CreateNewsRequest) (*news.NewsResponse, error) {
	slug, err := content.SlugFromTitle(req.Title)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, slug.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, news.ErrSlugAlreadyExists
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	article, err := news.New(news.CreateProps{
		ID:               uuid.New(),
		Slug:             slug,
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		IsFeatured:       false,
		CategoryID:       categoryID,
		AuthorID:         &authorID,
		FeaturedImageURL: req.FeaturedImageURL,
		FeaturedImageAlt: req.FeaturedImageAlt,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, article); err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.assignTags(ctx, article.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return s.enrich(ctx, article)
}

func (s *newsService) Update(ctx context.Context, id uuid.UUID, req news.UpdateNewsRequest) (*news.NewsResponse, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := article.Update(req.ToContentUpdate()); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, article); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := s.assignTags(ctx, article.ID, *req.Tags); err != nil {
			return nil, err
		}
	}

	return s.enrich(ctx, article)
}

// GetBySlug returns the article and records the view. A failed view-count
// save never fails the read.
func (s *newsService) GetBySlug(ctx context.Context, slug string) (*news.NewsResponse, error) {
	article, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if article.Status.IsPublished() {
		article.IncrementViews()
		if err := s.repo.Save(ctx, article); err != nil {
			logger.Warn("failed to record article view", map[string]interface{}{
				"slug":  slug,
				"error": err.Error(),
			})
		}
	}

	return s.enrich(ctx, article)
}

func (s *newsService) List(ctx context.Context, query news.ListNewsQuery) (*news.ListNewsResult, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	articles, err := s.repo.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, news.CountFilter{
		Status:     filter.Status,
		AuthorID:   filter.AuthorID,
		CategoryID: filter.CategoryID,
		TagID:      filter.TagID,
		IsFeatured: filter.IsFeatured,
	})
	if err != nil {
		return nil, err
	}

	items := make([]news.NewsListItem, 0, len(articles))
	for _, article := range articles {
		categoryRef, tags, err := s.associations(ctx, article)
		if err != nil {
			return nil, err
		}
		items = append(items, news.ToListItem(article, categoryRef, tags))
	}

	return &news.ListNewsResult{
		Data:       items,
		Pagination: paginate(filter.Page, filter.Limit, total),
	}, nil
}

func (s *newsService) GetFeatured(ctx context.Context, limit int) ([]news.NewsListItem, error) {
	if limit <= 0 || limit > maxLimit {
		limit = 5
	}

	featured := true
	articles, err := s.repo.FindMany(ctx, news.Filter{
		Page:       1,
		Limit:      limit,
		Status:     content.StatusPublished.String(),
		IsFeatured: &featured,
		SortBy:     "published_at",
		SortOrder:  "desc",
	})
	if err != nil {
		return nil, err
	}

	items := make([]news.NewsListItem, 0, len(articles))
	for _, article := range articles {
		categoryRef, tags, err := s.associations(ctx, article)
		if err != nil {
			return nil, err
		}
		items = append(items, news.ToListItem(article, categoryRef, tags))
	}
	return items, nil
}

func (s *newsService) SubmitForReview(ctx context.Context, id uuid.UUID) (*news.NewsResponse, error) {
	return s.transition(ctx, id, func(article *news.News) error {
		return article.SubmitForReview()
	})
}

func (s *newsService) Publish(ctx context.Context, id, editorID uuid.UUID) (*news.NewsResponse, error) {
	return s.transition(ctx, id, func(article *news.News) error {
		return article.Publish(editorID)
	})
}

func (s *newsService) Unpublish(ctx context.Context, id uuid.UUID) (*news.NewsResponse, error) {
	return s.transition(ctx, id, func(article *news.News) error {
		return article.Unpublish()
	})
}

func (s *newsService) Archive(ctx context.Context, id uuid.UUID) (*news.NewsResponse, error) {
	return s.transition(ctx, id, func(article *news.News) error {
		return article.Archive()
	})
}

func (s *newsService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*news.NewsResponse, error) {
	return s.transition(ctx, id, func(article *news.News) error {
		return article.SetFeatured(featured)
	})
}

func (s *newsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// transition loads, mutates and saves an article under the entity's own
// lifecycle rules.
func (s *newsService) transition(ctx context.Context, id uuid.UUID, op func(*news.News) error) (*news.NewsResponse, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := op(article); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, article); err != nil {
		return nil, err
	}

	return s.enrich(ctx, article)
}

func (s *newsService) resolveCategory(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, news.ErrCategoryNotFound
	}

	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if err == category.ErrCategoryNotFound {
			return nil, news.ErrCategoryNotFound
		}
		return nil, err
	}
	return &id, nil
}

func (s *newsService) assignTags(ctx context.Context, newsID uuid.UUID, names []string) error {
	tags, err := s.tags.FindOrCreateByNames(ctx, names)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return s.repo.ReplaceTags(ctx, newsID, ids)
}

func (s *newsService) associations(ctx context.Context, article *news.News) (*news.CategoryRef, []news.TagRef, error) {
	categoryRef, err := s.repo.GetCategoryForNews(ctx, article.CategoryID)
	if err != nil {
		return nil, nil, err
	}

	tags, err := s.repo.GetTagsForNews(ctx, article.ID)
	if err != nil {
		return nil, nil, err
	}
	return categoryRef, tags, nil
}

func (s *newsService) enrich(ctx context.Context, article *news.News) (*news.NewsResponse, error) {
	categoryRef, tags, err := s.associations(ctx, article)
	if err != nil {
		return nil, err
	}
	return news.ToResponse(article, categoryRef, tags), nil
}

func buildFilter(query news.ListNewsQuery) (news.Filter, error) {
	filter := news.Filter{
		Page:       query.Page,
		Limit:      query.Limit,
		SearchTerm: query.Search,
		IsFeatured: query.IsFeatured,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 || filter.Limit > maxLimit {
		filter.Limit = defaultLimit
	}

	if query.Status != "" {
		status, err := content.ParseStatus(query.Status)
		if err != nil {
			return news.Filter{}, err
		}
		filter.Status = status.String()
	}

	var err error
	if filter.AuthorID, err = parseOptionalUUID(query.AuthorID); err != nil {
		return news.Filter{}, content.NewValidationError("Invalid author id")
	}
	if filter.CategoryID, err = parseOptionalUUID(query.CategoryID); err != nil {
		return news.Filter{}, content.NewValidationError("Invalid category id")
	}
	if filter.TagID, err = parseOptionalUUID(query.TagID); err != nil {
		return news.Filter{}, content.NewValidationError("Invalid tag id")
	}

	if filter.DateFrom, err = parseOptionalDate(query.DateFrom); err != nil {
		return news.Filter{}, content.NewValidationError("Invalid date_from")
	}
	if filter.DateTo, err = parseOptionalDate(query.DateTo); err != nil {
		return news.Filter{}, content.NewValidationError("Invalid date_to")
	}

	return filter, nil
}

func paginate(page, limit, total int) news.Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return news.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
