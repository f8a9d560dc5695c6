package news

import (
	"github.com/google/uuid"

	"finpress-backend/internal/domains/content"
)

// News is the aggregate root for news articles. The editorial state machine
// and shared field invariants live in the embedded content.Lifecycle; news
// only requires a non-empty title and content.
type News struct {
	ID   uuid.UUID
	Slug content.Slug
	content.Lifecycle

	CategoryID *uuid.UUID

	// Version backs the repository's compare-and-swap save. Zero for a
	// never-persisted entity.
	Version int
}

// CreateProps is the input for a fresh article in DRAFT status.
type CreateProps struct {
	ID               uuid.UUID
	Slug             content.Slug
	Title            string
	Subtitle         *string
	Content          string
	Excerpt          *string
	IsFeatured       bool
	CategoryID       *uuid.UUID
	AuthorID         *uuid.UUID
	FeaturedImageURL *string
	FeaturedImageAlt *string
	MetaTitle        *string
	MetaDescription  *string
	MetaKeywords     []string
}

// New constructs a news article in DRAFT with zero views. Construction either
// fully succeeds or returns a ValidationError.
func New(p CreateProps) (*News, error) {
	lifecycle, err := content.NewLifecycle(content.NewsRules, content.LifecycleProps{
		Title:            p.Title,
		Subtitle:         p.Subtitle,
		Content:          p.Content,
		Excerpt:          p.Excerpt,
		IsFeatured:       p.IsFeatured,
		FeaturedImageURL: p.FeaturedImageURL,
		FeaturedImageAlt: p.FeaturedImageAlt,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
		AuthorID:         p.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	return &News{
		ID:         p.ID,
		Slug:       p.Slug,
		Lifecycle:  lifecycle,
		CategoryID: p.CategoryID,
	}, nil
}

// State is the persisted field set used by the repository to rebuild an
// article. Status and slug are re-parsed from their stored strings.
type State struct {
	ID         uuid.UUID
	Slug       string
	CategoryID *uuid.UUID
	Version    int
	content.LifecycleState
}

// Reconstitute rebuilds an article from storage. A corrupt row fails with the
// same validation errors as construction.
func Reconstitute(s State) (*News, error) {
	slug, err := content.NewSlug(s.Slug)
	if err != nil {
		return nil, err
	}

	lifecycle, err := content.ReconstituteLifecycle(content.NewsRules, s.LifecycleState)
	if err != nil {
		return nil, err
	}

	return &News{
		ID:         s.ID,
		Slug:       slug,
		Lifecycle:  lifecycle,
		CategoryID: s.CategoryID,
		Version:    s.Version,
	}, nil
}

// Update applies a partial update. Permitted only in DRAFT; nil fields are
// left unchanged and all invariants re-run after applying.
func (n *News) Update(u content.ContentUpdate) error {
	if err := n.GuardUpdate(); err != nil {
		return err
	}

	n.ApplyCommonUpdate(u)
	return n.Validate()
}

// SetCategory changes the category reference. Category lifecycle is
// independent; only a DRAFT article may be re-categorized.
func (n *News) SetCategory(categoryID *uuid.UUID) error {
	if err := n.GuardUpdate(); err != nil {
		return err
	}

	n.CategoryID = categoryID
	n.Touch()
	return nil
}
