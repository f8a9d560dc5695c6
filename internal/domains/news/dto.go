package news

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"finpress-backend/internal/domains/content"
)

// CreateNewsRequest is the payload for POST /news. The author comes from the
// authenticated caller, not the body.
type CreateNewsRequest struct {
	Title            string   `json:"title"`
	Subtitle         *string  `json:"subtitle"`
	Content          string   `json:"content"`
	Excerpt          *string  `json:"excerpt"`
	IsFeatured       bool     `json:"is_featured"`
	CategoryID       *string  `json:"category_id"`
	Tags             []string `json:"tags"`
	FeaturedImageURL *string  `json:"featured_image_url"`
	FeaturedImageAlt *string  `json:"featured_image_alt"`
	MetaTitle        *string  `json:"meta_title"`
	MetaDescription  *string  `json:"meta_description"`
	MetaKeywords     []string `json:"meta_keywords"`
}

func (r CreateNewsRequest) Validate() error {
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
		validation.Field(&r.CategoryID, is.UUIDv4),
		validation.Field(&r.FeaturedImageAlt, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, 500)),
	)
}

// UpdateNewsRequest is the PATCH payload; nil fields are left unchanged.
type UpdateNewsRequest struct {
	Title            *string   `json:"title"`
	Subtitle         *string   `json:"subtitle"`
	Content          *string   `json:"content"`
	Excerpt          *string   `json:"excerpt"`
	Tags             *[]string `json:"tags"`
	FeaturedImageURL *string   `json:"featured_image_url"`
	FeaturedImageAlt *string   `json:"featured_image_alt"`
	MetaTitle        *string   `json:"meta_title"`
	MetaDescription  *string   `json:"meta_description"`
	MetaKeywords     *[]string `json:"meta_keywords"`
}

func (r UpdateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(10, 500).Error("title must be 10-500 characters")),
		validation.Field(&r.Subtitle, validation.RuneLength(0, 1000)),
		validation.Field(&r.Content, validation.RuneLength(50, 0).Error("content must be at least 50 characters")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&r.FeaturedImageAlt, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, 255)),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, 500)),
	)
}

// ToContentUpdate converts the request to the domain's partial-update shape.
func (r UpdateNewsRequest) ToContentUpdate() content.ContentUpdate {
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

// ListNewsQuery carries the query params of GET /news.
type ListNewsQuery struct {
	Page       int     `form:"page"`
	Limit      int     `form:"limit"`
	Status     string  `form:"status"`
	AuthorID   *string `form:"author_id"`
	CategoryID *string `form:"category_id"`
	TagID      *string `form:"tag_id"`
	Search     string  `form:"search"`
	IsFeatured *bool   `form:"is_featured"`
	DateFrom   string  `form:"date_from"`
	DateTo     string  `form:"date_to"`
	SortBy     string  `form:"sort_by"`
	SortOrder  string  `form:"sort_order"`
}

// NewsResponse is the full article representation returned to clients.
type NewsResponse struct {
	ID               uuid.UUID    `json:"id"`
	Slug             string       `json:"slug"`
	Title            string       `json:"title"`
	Subtitle         *string      `json:"subtitle"`
	Content          string       `json:"content"`
	Excerpt          *string      `json:"excerpt"`
	Status           string       `json:"status"`
	IsFeatured       bool         `json:"is_featured"`
	CategoryID       *uuid.UUID   `json:"category_id"`
	Category         *CategoryRef `json:"category"`
	Tags             []TagRef     `json:"tags"`
	FeaturedImageURL *string      `json:"featured_image_url"`
	FeaturedImageAlt *string      `json:"featured_image_alt"`
	MetaTitle        *string      `json:"meta_title"`
	MetaDescription  *string      `json:"meta_description"`
	MetaKeywords     []string     `json:"meta_keywords"`
	AuthorID         *uuid.UUID   `json:"author_id"`
	EditorID         *uuid.UUID   `json:"editor_id"`
	ViewCount        int          `json:"view_count"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	PublishedAt      *time.Time   `json:"published_at"`
	ArchivedAt       *time.Time   `json:"archived_at"`
}

// NewsListItem is the lighter list representation.
type NewsListItem struct {
	ID               uuid.UUID    `json:"id"`
	Slug             string       `json:"slug"`
	Title            string       `json:"title"`
	Excerpt          *string      `json:"excerpt"`
	Status           string       `json:"status"`
	IsFeatured       bool         `json:"is_featured"`
	CategoryID       *uuid.UUID   `json:"category_id"`
	Category         *CategoryRef `json:"category"`
	Tags             []TagRef     `json:"tags"`
	FeaturedImageURL *string      `json:"featured_image_url"`
	AuthorID         *uuid.UUID   `json:"author_id"`
	ViewCount        int          `json:"view_count"`
	CreatedAt        time.Time    `json:"created_at"`
	PublishedAt      *time.Time   `json:"published_at"`
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

// ListNewsResult is the payload of GET /news.
type ListNewsResult struct {
	Data       []NewsListItem `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ToResponse maps an entity plus its associations to the response shape.
func ToResponse(article *News, category *CategoryRef, tags []TagRef) *NewsResponse {
	if tags == nil {
		tags = []TagRef{}
	}
	return &NewsResponse{
		ID:               article.ID,
		Slug:             article.Slug.String(),
		Title:            article.Title,
		Subtitle:         article.Subtitle,
		Content:          article.Content,
		Excerpt:          article.Excerpt,
		Status:           article.Status.String(),
		IsFeatured:       article.IsFeatured,
		CategoryID:       article.CategoryID,
		Category:         category,
		Tags:             tags,
		FeaturedImageURL: article.FeaturedImageURL,
		FeaturedImageAlt: article.FeaturedImageAlt,
		MetaTitle:        article.MetaTitle,
		MetaDescription:  article.MetaDescription,
		MetaKeywords:     article.MetaKeywords,
		AuthorID:         article.AuthorID,
		EditorID:         article.EditorID,
		ViewCount:        article.ViewCount,
		CreatedAt:        article.CreatedAt,
		UpdatedAt:        article.UpdatedAt,
		PublishedAt:      article.PublishedAt,
		ArchivedAt:       article.ArchivedAt,
	}
}

// ToListItem maps an entity to the list representation.
func ToListItem(article *News, category *CategoryRef, tags []TagRef) NewsListItem {
	if tags == nil {
		tags = []TagRef{}
	}
	return NewsListItem{
		ID:               article.ID,
		Slug:             article.Slug.String(),
		Title:            article.Title,
		Excerpt:          article.Excerpt,
		Status:           article.Status.String(),
		IsFeatured:       article.IsFeatured,
		CategoryID:       article.CategoryID,
		Category:         category,
		Tags:             tags,
		FeaturedImageURL: article.FeaturedImageURL,
		AuthorID:         article.AuthorID,
		ViewCount:        article.ViewCount,
		CreatedAt:        article.CreatedAt,
		PublishedAt:      article.PublishedAt,
	}
}
