package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/analysis"
	"finpress-backend/internal/domains/category"
	"finpress-backend/internal/domains/content"
	"finpress-backend/internal/domains/tag"
	"finpress-backend/pkg/logger"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type analysisService struct {
	repo       analysis.Repository
	categories category.Repository
	tags       tag.Repository
}

// NewAnalysisService wires the analysis application service.
func NewAnalysisService(repo analysis.Repository, categories category.Repository, tags tag.Repository) analysis.Service {
	return &analysisService{repo: repo, categories: categories, tags: tags}
}

func (s *analysisService) Create(ctx context.Context, authorID uuid.UUID, req analysis.CreateAnalysisRequest) (*analysis.AnalysisResponse, error) {
	slug, err := content.SlugFromTitle(req.Title)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, slug.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, analysis.ErrSlugAlreadyExists
	}

	ticker, err := analysis.NewStockTicker(req.StockTicker)
	if err != nil {
		return nil, err
	}

	analysisType, err := analysis.ParseAnalysisType(req.AnalysisType)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	a, err := analysis.New(analysis.CreateProps{
		ID:               uuid.New(),
		Slug:             slug,
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		IsFeatured:       false,
		Ticker:           ticker,
		Type:             analysisType,
		TargetPrice:      req.TargetPrice,
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

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.assignTags(ctx, a.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return s.enrich(ctx, a)
}

func (s *analysisService) Update(ctx context.Context, id uuid.UUID, req analysis.UpdateAnalysisRequest) (*analysis.AnalysisResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := analysis.UpdateProps{
		ContentUpdate: req.ToContentUpdate(),
		TargetPrice:   req.TargetPrice,
	}

	if req.StockTicker != nil {
		ticker, err := analysis.NewStockTicker(*req.StockTicker)
		if err != nil {
			return nil, err
		}
		update.Ticker = &ticker
	}
	if req.AnalysisType != nil {
		analysisType, err := analysis.ParseAnalysisType(*req.AnalysisType)
		if err != nil {
			return nil, err
		}
		update.Type = &analysisType
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		update.CategoryID = categoryID
	}

	if err := a.Update(update); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := s.assignTags(ctx, a.ID, *req.Tags); err != nil {
			return nil, err
		}
	}

	return s.enrich(ctx, a)
}

// GetBySlug returns the analysis and records the view. A failed view-count
// save never fails the read.
func (s *analysisService) GetBySlug(ctx context.Context, slug string) (*analysis.AnalysisResponse, error) {
	a, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if a.Status.IsPublished() {
		a.IncrementViews()
		if err := s.repo.Save(ctx, a); err != nil {
			logger.Warn("failed to record analysis view", map[string]interface{}{
				"slug":  slug,
				"error": err.Error(),
			})
		}
	}

	return s.enrich(ctx, a)
}

func (s *analysisService) List(ctx context.Context, query analysis.ListAnalysisQuery) (*analysis.ListAnalysisResult, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, analysis.CountFilter{
		Status:     filter.Status,
		AuthorID:   filter.AuthorID,
		CategoryID: filter.CategoryID,
		TagID:      filter.TagID,
		Ticker:     filter.Ticker,
		Type:       filter.Type,
		IsFeatured: filter.IsFeatured,
	})
	if err != nil {
		return nil, err
	}

	items, err := s.listItems(ctx, results)
	if err != nil {
		return nil, err
	}

	return &analysis.ListAnalysisResult{
		Data:       items,
		Pagination: paginate(filter.Page, filter.Limit, total),
	}, nil
}

func (s *analysisService) GetFeatured(ctx context.Context, limit int) ([]analysis.AnalysisListItem, error) {
	if limit <= 0 || limit > maxLimit {
		limit = 5
	}

	featured := true
	results, err := s.repo.FindMany(ctx, analysis.Filter{
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
	return s.listItems(ctx, results)
}

func (s *analysisService) GetLatestByTicker(ctx context.Context, rawTicker string, limit int) ([]analysis.AnalysisListItem, error) {
	ticker, err := analysis.NewStockTicker(rawTicker)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > maxLimit {
		limit = 5
	}

	results, err := s.repo.FindLatestByTicker(ctx, ticker, limit)
	if err != nil {
		return nil, err
	}
	return s.listItems(ctx, results)
}

func (s *analysisService) SubmitForReview(ctx context.Context, id uuid.UUID) (*analysis.AnalysisResponse, error) {
	return s.transition(ctx, id, func(a *analysis.Analysis) error {
		return a.SubmitForReview()
	})
}

func (s *analysisService) Publish(ctx context.Context, id, editorID uuid.UUID) (*analysis.AnalysisResponse, error) {
	return s.transition(ctx, id, func(a *analysis.Analysis) error {
		return a.Publish(editorID)
	})
}

func (s *analysisService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*analysis.AnalysisResponse, error) {
	return s.transition(ctx, id, func(a *analysis.Analysis) error {
		return a.SetFeatured(featured)
	})
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *analysisService) transition(ctx context.Context, id uuid.UUID, op func(*analysis.Analysis) error) (*analysis.AnalysisResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := op(a); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	return s.enrich(ctx, a)
}

func (s *analysisService) resolveCategory(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, analysis.ErrCategoryNotFound
	}

	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if err == category.ErrCategoryNotFound {
			return nil, analysis.ErrCategoryNotFound
		}
		return nil, err
	}
	return &id, nil
}

func (s *analysisService) assignTags(ctx context.Context, analysisID uuid.UUID, names []string) error {
	tags, err := s.tags.FindOrCreateByNames(ctx, names)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return s.repo.ReplaceTags(ctx, analysisID, ids)
}

func (s *analysisService) listItems(ctx context.Context, results []*analysis.Analysis) ([]analysis.AnalysisListItem, error) {
	items := make([]analysis.AnalysisListItem, 0, len(results))
	for _, a := range results {
		categoryRef, tags, err := s.associations(ctx, a)
		if err != nil {
			return nil, err
		}
		items = append(items, analysis.ToListItem(a, categoryRef, tags))
	}
	return items, nil
}

func (s *analysisService) associations(ctx context.Context, a *analysis.Analysis) (*analysis.CategoryRef, []analysis.TagRef, error) {
	categoryRef, err := s.repo.GetCategoryForAnalysis(ctx, a.CategoryID)
	if err != nil {
		return nil, nil, err
	}

	tags, err := s.repo.GetTagsForAnalysis(ctx, a.ID)
	if err != nil {
		return nil, nil, err
	}
	return categoryRef, tags, nil
}

func (s *analysisService) enrich(ctx context.Context, a *analysis.Analysis) (*analysis.AnalysisResponse, error) {
	categoryRef, tags, err := s.associations(ctx, a)
	if err != nil {
		return nil, err
	}
	return analysis.ToResponse(a, categoryRef, tags), nil
}

func buildFilter(query analysis.ListAnalysisQuery) (analysis.Filter, error) {
	filter := analysis.Filter{
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
			return analysis.Filter{}, err
		}
		filter.Status = status.String()
	}

	if query.StockTicker != "" {
		ticker, err := analysis.NewStockTicker(query.StockTicker)
		if err != nil {
			return analysis.Filter{}, err
		}
		filter.Ticker = ticker.String()
	}

	if query.Type != "" {
		analysisType, err := analysis.ParseAnalysisType(query.Type)
		if err != nil {
			return analysis.Filter{}, err
		}
		filter.Type = analysisType.String()
	}

	var err error
	if filter.AuthorID, err = parseOptionalUUID(query.AuthorID); err != nil {
		return analysis.Filter{}, content.NewValidationError("Invalid author id")
	}
	if filter.CategoryID, err = parseOptionalUUID(query.CategoryID); err != nil {
		return analysis.Filter{}, content.NewValidationError("Invalid category id")
	}
	if filter.TagID, err = parseOptionalUUID(query.TagID); err != nil {
		return analysis.Filter{}, content.NewValidationError("Invalid tag id")
	}

	if filter.DateFrom, err = parseOptionalDate(query.DateFrom); err != nil {
		return analysis.Filter{}, content.NewValidationError("Invalid date_from")
	}
	if filter.DateTo, err = parseOptionalDate(query.DateTo); err != nil {
		return analysis.Filter{}, content.NewValidationError("Invalid date_to")
	}

	return filter, nil
}

func paginate(page, limit, total int) analysis.Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return analysis.Pagination{
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
