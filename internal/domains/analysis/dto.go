package analysis

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finpress-backend/internal/domains/content"
)

// CreateAnalysisRequest is the payload for POST /analysis.
type CreateAnalysisRequest struct {
	Title            string           `json:"title"`
	Subtitle         *string          `json:"subtitle"`
	Content          string           `json:"content"`
	Excerpt          *string          `json:"excerpt"`
	StockTicker      string           `json:"stock_ticker"`
	AnalysisType     string           `json:"analysis_type"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	CategoryID       *string          `json:"category_id"`
	Tags             []string         `json:"tags"`
	FeaturedImageURL *string          `json:"featured_image_url"`
	FeaturedImageAlt *string          `json:"featured_image_alt"`
	MetaTitle        *string          `json:"meta_title"`
	MetaDescription  *string          `json:"meta_description"`
	MetaKeywords     []string         `json:"meta_keywords"`
}

func (r CreateAnalysisRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(10, 500).Error("title must be 10-500 characters"),
		),
		validation.Field(&r.Subtitle, validation.RuneLength(0, 1000)),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.RuneLength(50, 0).Error("content must be at least 50 characters"),
		),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&r.StockTicker, validation.Required.Error("stock ticker is required")),
		validation.Field(&r.AnalysisType, validation.Required.Error("analysis type is required")),
		validation.Field(&r.CategoryID, is.UUIDv4),
		validation.Field(&r.FeaturedImageAlt, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, 500)),
	)
}

// UpdateAnalysisRequest is the PATCH payload; nil fields are left unchanged.
type UpdateAnalysisRequest struct {
	Title            *string          `json:"title"`
	Subtitle         *string          `json:"subtitle"`
	Content          *string          `json:"content"`
	Excerpt          *string          `json:"excerpt"`
	StockTicker      *string          `json:"stock_ticker"`
	AnalysisType     *string          `json:"analysis_type"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	CategoryID       *string          `json:"category_id"`
	Tags             *[]string        `json:"tags"`
	FeaturedImageURL *string          `json:"featured_image_url"`
	FeaturedImageAlt *string          `json:"featured_image_alt"`
	MetaTitle        *string          `json:"meta_title"`
	MetaDescription  *string          `json:"meta_description"`
	MetaKeywords     *[]string        `json:"meta_keywords"`
}

func (r UpdateAnalysisRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(10, 500).Error("title must be 10-500 characters")),
		validation.Field(&r.Subtitle, validation.RuneLength(0, 1000)),
		validation.Field(&r.Content, validation.RuneLength(50, 0).Error("content must be at least 50 characters")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&r.CategoryID, is.UUIDv4),
		validation.Field(&r.FeaturedImageAlt, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, 500)),
	)
}

// ToContentUpdate converts the shared fields to the domain's partial-update
// shape.
func (r UpdateAnalysisRequest) ToContentUpdate() content.ContentUpdate {
	return content.ContentUpdate{
		Title:            r.Title,
		Subtitle:         r.Subtitle,
		Content:          r.Content,
		Excerpt:          r.Excerpt,
		FeaturedImageURL: r.FeaturedImageURL,
		FeaturedImageAlt: r.FeaturedImageAlt,
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
		MetaKeywords:     r.MetaKeywords,
	}
}

// ListAnalysisQuery carries the query params of GET /analysis.
type ListAnalysisQuery struct {
	Page        int     `form:"page"`
	Limit       int     `form:"limit"`
	Status      string  `form:"status"`
	AuthorID    *string `form:"author_id"`
	CategoryID  *string `form:"category_id"`
	TagID       *string `form:"tag_id"`
	StockTicker string  `form:"stock_ticker"`
	Type        string  `form:"analysis_type"`
	Search      string  `form:"search"`
	IsFeatured  *bool   `form:"is_featured"`
	DateFrom    string  `form:"date_from"`
	DateTo      string  `form:"date_to"`
	SortBy      string  `form:"sort_by"`
	SortOrder   string  `form:"sort_order"`
}

// AnalysisResponse is the full representation returned to clients.
type AnalysisResponse struct {
	ID               uuid.UUID        `json:"id"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Subtitle         *string          `json:"subtitle"`
	Content          string           `json:"content"`
	Excerpt          *string          `json:"excerpt"`
	Status           string           `json:"status"`
	IsFeatured       bool             `json:"is_featured"`
	StockTicker      string           `json:"stock_ticker"`
	AnalysisType     string           `json:"analysis_type"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Category         *CategoryRef     `json:"category"`
	Tags             []TagRef         `json:"tags"`
	FeaturedImageURL *string          `json:"featured_image_url"`
	FeaturedImageAlt *string          `json:"featured_image_alt"`
	MetaTitle        *string          `json:"meta_title"`
	MetaDescription  *string          `json:"meta_description"`
	MetaKeywords     []string         `json:"meta_keywords"`
	AuthorID         *uuid.UUID       `json:"author_id"`
	EditorID         *uuid.UUID       `json:"editor_id"`
	ViewCount        int              `json:"view_count"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	PublishedAt      *time.Time       `json:"published_at"`
	ArchivedAt       *time.Time       `json:"archived_at"`
}

// AnalysisListItem is the lighter list representation.
type AnalysisListItem struct {
	ID               uuid.UUID        `json:"id"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Excerpt          *string          `json:"excerpt"`
	Status           string           `json:"status"`
	IsFeatured       bool             `json:"is_featured"`
	StockTicker      string           `json:"stock_ticker"`
	AnalysisType     string           `json:"analysis_type"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Category         *CategoryRef     `json:"category"`
	Tags             []TagRef         `json:"tags"`
	FeaturedImageURL *string          `json:"featured_image_url"`
	AuthorID         *uuid.UUID       `json:"author_id"`
	ViewCount        int              `json:"view_count"`
	CreatedAt        time.Time        `json:"created_at"`
	PublishedAt      *time.Time       `json:"published_at"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ListAnalysisResult is the payload of GET /analysis.
type ListAnalysisResult struct {
	Data       []AnalysisListItem `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// ToResponse maps an entity plus its associations to the response shape.
func ToResponse(a *Analysis, category *CategoryRef, tags []TagRef) *AnalysisResponse {
	if tags == nil {
		tags = []TagRef{}
	}
	return &AnalysisResponse{
		ID:               a.ID,
		Slug:             a.Slug.String(),
		Title:            a.Title,
		Subtitle:         a.Subtitle,
		Content:          a.Content,
		Excerpt:          a.Excerpt,
		Status:           a.Status.String(),
		IsFeatured:       a.IsFeatured,
		StockTicker:      a.Ticker.String(),
		AnalysisType:     a.Type.String(),
		TargetPrice:      a.TargetPrice,
		CategoryID:       a.CategoryID,
		Category:         category,
		Tags:             tags,
		FeaturedImageURL: a.FeaturedImageURL,
		FeaturedImageAlt: a.FeaturedImageAlt,
		MetaTitle:        a.MetaTitle,
		MetaDescription:  a.MetaDescription,
		MetaKeywords:     a.MetaKeywords,
		AuthorID:         a.AuthorID,
		EditorID:         a.EditorID,
		ViewCount:        a.ViewCount,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		PublishedAt:      a.PublishedAt,
		ArchivedAt:       a.ArchivedAt,
	}
}

// ToListItem maps an entity to the list representation.
func ToListItem(a *Analysis, category *CategoryRef, tags []TagRef) AnalysisListItem {
	if tags == nil {
		tags = []TagRef{}
	}
	return AnalysisListItem{
		ID:               a.ID,
		Slug:             a.Slug.String(),
		Title:            a.Title,
		Excerpt:          a.Excerpt,
		Status:           a.Status.String(),
		IsFeatured:       a.IsFeatured,
		StockTicker:      a.Ticker.String(),
		AnalysisType:     a.Type.String(),
		TargetPrice:      a.TargetPrice,
		CategoryID:       a.CategoryID,
		Category:         category,
		Tags:             tags,
		FeaturedImageURL: a.FeaturedImageURL,
		AuthorID:         a.AuthorID,
		ViewCount:        a.ViewCount,
		CreatedAt:        a.CreatedAt,
		PublishedAt:      a.PublishedAt,
	}
}
