package content

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	maxTitleChars     = 500
	maxSubtitleChars  = 1000
	maxExcerptChars   = 500
	maxMetaTitleChars = 255
	maxMetaDescChars  = 500
)

// Rules parameterizes the shared lifecycle per content kind. News and
// analysis share the state machine but not the validation thresholds:
// news only requires non-empty title/content, analysis requires title >= 10
// and content >= 50 characters. Do not unify the thresholds.
type Rules struct {
	Kind            string // used in transition error messages
	UpdateVerb      string // "edit" or "update", per-kind message vocabulary
	MinTitleChars   int
	MinContentChars int
}

var (
	NewsRules     = Rules{Kind: "news", UpdateVerb: "edit", MinTitleChars: 1, MinContentChars: 1}
	AnalysisRules = Rules{Kind: "analysis", UpdateVerb: "update", MinTitleChars: 10, MinContentChars: 50}
)

// Lifecycle is the shared editorial core embedded by the News and Analysis
// aggregates. All state transitions are guarded here in one place; callers
// get back a TransitionError with the exact per-kind message when a method
// is invoked from the wrong status.
type Lifecycle struct {
	Title            string
	Subtitle         *string
	Content          string
	Excerpt          *string
	Status           Status
	IsFeatured       bool
	FeaturedImageURL *string
	FeaturedImageAlt *string
	MetaTitle        *string
	MetaDescription  *string
	MetaKeywords     pq.StringArray
	AuthorID         *uuid.UUID
	EditorID         *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PublishedAt      *time.Time
	ArchivedAt       *time.Time
	ViewCount        int

	rules Rules
}

// LifecycleProps is the input for a fresh lifecycle in DRAFT status.
type LifecycleProps struct {
	Title            string
	Subtitle         *string
	Content          string
	Excerpt          *string
	IsFeatured       bool
	FeaturedImageURL *string
	FeaturedImageAlt *string
	MetaTitle        *string
	MetaDescription  *string
	MetaKeywords     []string
	AuthorID         *uuid.UUID
}

// LifecycleState is the full persisted field set used to rebuild a
// lifecycle from storage.
type LifecycleState struct {
	Title            string
	Subtitle         *string
	Content          string
	Excerpt          *string
	Status           string
	IsFeatured       bool
	FeaturedImageURL *string
	FeaturedImageAlt *string
	MetaTitle        *string
	MetaDescription  *string
	MetaKeywords     []string
	AuthorID         *uuid.UUID
	EditorID         *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PublishedAt      *time.Time
	ArchivedAt       *time.Time
	ViewCount        int
}

// ContentUpdate carries partial updates. Nil fields are left unchanged.
type ContentUpdate struct {
	Title            *string
	Subtitle         *string
	Content          *string
	Excerpt          *string
	FeaturedImageURL *string
	FeaturedImageAlt *string
	MetaTitle        *string
	MetaDescription  *string
	MetaKeywords     *[]string
}

// NewLifecycle constructs a lifecycle in DRAFT with zero views and no
// editor. Validation runs before anything is returned.
func NewLifecycle(rules Rules, p LifecycleProps) (Lifecycle, error) {
	now := time.Now()
	l := Lifecycle{
		Title:            p.Title,
		Subtitle:         p.Subtitle,
		Content:          p.Content,
		Excerpt:          p.Excerpt,
		Status:           StatusDraft,
		IsFeatured:       p.IsFeatured,
		FeaturedImageURL: p.FeaturedImageURL,
		FeaturedImageAlt: p.FeaturedImageAlt,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     pq.StringArray(p.MetaKeywords),
		AuthorID:         p.AuthorID,
		CreatedAt:        now,
		UpdatedAt:        now,
		ViewCount:        0,
		rules:            rules,
	}

	if err := l.Validate(); err != nil {
		return Lifecycle{}, err
	}
	return l, nil
}

// ReconstituteLifecycle rebuilds a lifecycle from persisted state. The same
// validation applies: a corrupt row fails to reconstitute.
func ReconstituteLifecycle(rules Rules, s LifecycleState) (Lifecycle, error) {
	status, err := ParseStatus(s.Status)
	if err != nil {
		return Lifecycle{}, err
	}

	l := Lifecycle{
		Title:            s.Title,
		Subtitle:         s.Subtitle,
		Content:          s.Content,
		Excerpt:          s.Excerpt,
		Status:           status,
		IsFeatured:       s.IsFeatured,
		FeaturedImageURL: s.FeaturedImageURL,
		FeaturedImageAlt: s.FeaturedImageAlt,
		MetaTitle:        s.MetaTitle,
		MetaDescription:  s.MetaDescription,
		MetaKeywords:     pq.StringArray(s.MetaKeywords),
		AuthorID:         s.AuthorID,
		EditorID:         s.EditorID,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		PublishedAt:      s.PublishedAt,
		ArchivedAt:       s.ArchivedAt,
		ViewCount:        s.ViewCount,
		rules:            rules,
	}

	if err := l.Validate(); err != nil {
		return Lifecycle{}, err
	}
	return l, nil
}

// Snapshot returns the persistable field set of the lifecycle.
func (l *Lifecycle) Snapshot() LifecycleState {
	return LifecycleState{
		Title:            l.Title,
		Subtitle:         l.Subtitle,
		Content:          l.Content,
		Excerpt:          l.Excerpt,
		Status:           l.Status.String(),
		IsFeatured:       l.IsFeatured,
		FeaturedImageURL: l.FeaturedImageURL,
		FeaturedImageAlt: l.FeaturedImageAlt,
		MetaTitle:        l.MetaTitle,
		MetaDescription:  l.MetaDescription,
		MetaKeywords:     l.MetaKeywords,
		AuthorID:         l.AuthorID,
		EditorID:         l.EditorID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
		PublishedAt:      l.PublishedAt,
		ArchivedAt:       l.ArchivedAt,
		ViewCount:        l.ViewCount,
	}
}

// GuardUpdate rejects updates outside DRAFT.
func (l *Lifecycle) GuardUpdate() error {
	if !l.Status.IsDraft() {
		return NewTransitionError(fmt.Sprintf("Can only %s %s in DRAFT status", l.rules.UpdateVerb, l.rules.Kind))
	}
	return nil
}

// ApplyCommonUpdate applies the non-nil fields of u and bumps UpdatedAt.
// Callers are responsible for guarding and re-validating.
func (l *Lifecycle) ApplyCommonUpdate(u ContentUpdate) {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Subtitle != nil {
		l.Subtitle = u.Subtitle
	}
	if u.Content != nil {
		l.Content = *u.Content
	}
	if u.Excerpt != nil {
		l.Excerpt = u.Excerpt
	}
	if u.FeaturedImageURL != nil {
		l.FeaturedImageURL = u.FeaturedImageURL
	}
	if u.FeaturedImageAlt != nil {
		l.FeaturedImageAlt = u.FeaturedImageAlt
	}
	if u.MetaTitle != nil {
		l.MetaTitle = u.MetaTitle
	}
	if u.MetaDescription != nil {
		l.MetaDescription = u.MetaDescription
	}
	if u.MetaKeywords != nil {
		l.MetaKeywords = pq.StringArray(*u.MetaKeywords)
	}

	l.Touch()
}

// SubmitForReview moves DRAFT -> REVIEW.
func (l *Lifecycle) SubmitForReview() error {
	if !l.Status.IsDraft() {
		return NewTransitionError(fmt.Sprintf("Can only submit DRAFT %s for review", l.rules.Kind))
	}

	l.Status = StatusReview
	l.Touch()
	return nil
}

// Publish moves REVIEW -> PUBLISHED and stamps the editor and publish time.
func (l *Lifecycle) Publish(editorID uuid.UUID) error {
	if !l.Status.IsReview() {
		return NewTransitionError(fmt.Sprintf("Can only publish %s in REVIEW status", l.rules.Kind))
	}

	now := time.Now()
	l.Status = StatusPublished
	l.EditorID = &editorID
	l.PublishedAt = &now
	l.UpdatedAt = now
	return nil
}

// Unpublish reverts PUBLISHED -> DRAFT and clears the publish time.
func (l *Lifecycle) Unpublish() error {
	if !l.Status.IsPublished() {
		return NewTransitionError(fmt.Sprintf("Can only unpublish PUBLISHED %s", l.rules.Kind))
	}

	l.Status = StatusDraft
	l.PublishedAt = nil
	l.Touch()
	return nil
}

// Archive moves PUBLISHED -> ARCHIVED and stamps the archive time.
func (l *Lifecycle) Archive() error {
	if !l.Status.IsPublished() {
		return NewTransitionError(fmt.Sprintf("Can only archive PUBLISHED %s", l.rules.Kind))
	}

	now := time.Now()
	l.Status = StatusArchived
	l.ArchivedAt = &now
	l.UpdatedAt = now
	return nil
}

// SetFeatured marks content as featured. Only published content may be
// featured; clearing the flag is always allowed.
func (l *Lifecycle) SetFeatured(featured bool) error {
	if featured && !l.Status.IsPublished() {
		return NewTransitionError(fmt.Sprintf("Only published %s can be featured", l.rules.Kind))
	}

	l.IsFeatured = featured
	l.Touch()
	return nil
}

// IncrementViews counts a view on published content. On anything else it is
// a defined no-op, not an error: the get-by-slug flow calls this
// unconditionally.
func (l *Lifecycle) IncrementViews() {
	if l.Status.IsPublished() {
		l.ViewCount++
	}
}

// Touch bumps UpdatedAt.
func (l *Lifecycle) Touch() {
	l.UpdatedAt = time.Now()
}

// Validate enforces the shared field invariants under the configured rules.
func (l *Lifecycle) Validate() error {
	trimmedTitle := strings.TrimSpace(l.Title)
	if l.rules.MinTitleChars > 1 {
		if utf8.RuneCountInString(trimmedTitle) < l.rules.MinTitleChars {
			return NewValidationError(fmt.Sprintf("Title must be at least %d characters", l.rules.MinTitleChars))
		}
	} else if trimmedTitle == "" {
		return NewValidationError("Title is required")
	}

	if utf8.RuneCountInString(l.Title) > maxTitleChars {
		return NewValidationError(fmt.Sprintf("Title must be %d characters or less", maxTitleChars))
	}

	trimmedContent := strings.TrimSpace(l.Content)
	if l.rules.MinContentChars > 1 {
		if utf8.RuneCountInString(trimmedContent) < l.rules.MinContentChars {
			return NewValidationError(fmt.Sprintf("Content must be at least %d characters", l.rules.MinContentChars))
		}
	} else if trimmedContent == "" {
		return NewValidationError("Content is required")
	}

	if l.Subtitle != nil && utf8.RuneCountInString(*l.Subtitle) > maxSubtitleChars {
		return NewValidationError(fmt.Sprintf("Subtitle must be %d characters or less", maxSubtitleChars))
	}

	if l.Excerpt != nil && utf8.RuneCountInString(*l.Excerpt) > maxExcerptChars {
		return NewValidationError(fmt.Sprintf("Excerpt must be %d characters or less", maxExcerptChars))
	}

	if l.MetaTitle != nil && utf8.RuneCountInString(*l.MetaTitle) > maxMetaTitleChars {
		return NewValidationError(fmt.Sprintf("Meta title must be %d characters or less", maxMetaTitleChars))
	}

	if l.MetaDescription != nil && utf8.RuneCountInString(*l.MetaDescription) > maxMetaDescChars {
		return NewValidationError(fmt.Sprintf("Meta description must be %d characters or less", maxMetaDescChars))
	}

	return nil
}
