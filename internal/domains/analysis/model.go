package analysis

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finpress-backend/internal/domains/content"
)

// Analysis is the aggregate root for stock analysis articles. It shares the
// editorial state machine with news through the embedded content.Lifecycle
// but requires longer copy (10-character titles, 50-character bodies) and
// carries stock-specific fields.
type Analysis struct {
	ID   uuid.UUID
	Slug content.Slug
	content.Lifecycle

	Ticker      StockTicker
	Type        AnalysisType
	TargetPrice *decimal.Decimal
	CategoryID  *uuid.UUID

	// Version backs the repository's compare-and-swap save. Zero for a
	// never-persisted entity.
	Version int
}

// CreateProps is the input for a fresh analysis in DRAFT status.
type CreateProps struct {
	ID               uuid.UUID
	Slug             content.Slug
	Title            string
	Subtitle         *string
	Content          string
	Excerpt          *string
	IsFeatured       bool
	Ticker           StockTicker
	Type             AnalysisType
	TargetPrice      *decimal.Decimal
	CategoryID       *uuid.UUID
	AuthorID         *uuid.UUID
	FeaturedImageURL *string
	FeaturedImageAlt *string
	MetaTitle        *string
	MetaDescription  *string
	MetaKeywords     []string
}

// New constructs an analysis in DRAFT with zero views. Construction either
// fully succeeds or returns a ValidationError.
func New(p CreateProps) (*Analysis, error) {
	lifecycle, err := content.NewLifecycle(content.AnalysisRules, content.LifecycleProps{
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

	a := &Analysis{
		ID:          p.ID,
		Slug:        p.Slug,
		Lifecycle:   lifecycle,
		Ticker:      p.Ticker,
		Type:        p.Type,
		TargetPrice: p.TargetPrice,
		CategoryID:  p.CategoryID,
	}
	if err := a.validatePrice(); err != nil {
		return nil, err
	}
	return a, nil
}

// State is the persisted field set used by the repository to rebuild an
// analysis.
type State struct {
	ID          uuid.UUID
	Slug        string
	Ticker      string
	Type        string
	TargetPrice *decimal.Decimal
	CategoryID  *uuid.UUID
	Version     int
	content.LifecycleState
}

// Reconstitute rebuilds an analysis from storage. A corrupt row fails with
// the same validation errors as construction.
func Reconstitute(s State) (*Analysis, error) {
	slug, err := content.NewSlug(s.Slug)
	if err != nil {
		return nil, err
	}

	ticker, err := NewStockTicker(s.Ticker)
	if err != nil {
		return nil, err
	}

	analysisType, err := ParseAnalysisType(s.Type)
	if err != nil {
		return nil, err
	}

	lifecycle, err := content.ReconstituteLifecycle(content.AnalysisRules, s.LifecycleState)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		ID:          s.ID,
		Slug:        slug,
		Lifecycle:   lifecycle,
		Ticker:      ticker,
		Type:        analysisType,
		TargetPrice: s.TargetPrice,
		CategoryID:  s.CategoryID,
		Version:     s.Version,
	}
	if err := a.validatePrice(); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateProps carries the analysis-specific partial update on top of the
// shared content fields. Nil fields are left unchanged.
type UpdateProps struct {
	content.ContentUpdate

	Ticker      *StockTicker
	Type        *AnalysisType
	TargetPrice *decimal.Decimal
	CategoryID  *uuid.UUID
}

// Update applies a partial update. Permitted only in DRAFT; all invariants
// re-run after applying.
func (a *Analysis) Update(u UpdateProps) error {
	if err := a.GuardUpdate(); err != nil {
		return err
	}

	a.ApplyCommonUpdate(u.ContentUpdate)

	if u.Ticker != nil {
		a.Ticker = *u.Ticker
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.TargetPrice != nil {
		a.TargetPrice = u.TargetPrice
	}
	if u.CategoryID != nil {
		a.CategoryID = u.CategoryID
	}

	if err := a.Validate(); err != nil {
		return err
	}
	return a.validatePrice()
}

func (a *Analysis) validatePrice() error {
	if a.TargetPrice != nil && a.TargetPrice.IsNegative() {
		return content.NewValidationError("Target price must be positive")
	}
	return nil
}
