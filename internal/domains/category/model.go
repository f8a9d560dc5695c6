package category

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/content"
)

const (
	maxNameChars        = 100
	maxDescriptionChars = 500
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category groups articles for navigation. A simple aggregate without a
// lifecycle; the slug is fixed at creation.
type Category struct {
	ID          uuid.UUID
	Slug        content.Slug
	Name        string
	Description *string
	Color       *string
	Icon        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProps is the input for a new category.
type CreateProps struct {
	ID          uuid.UUID
	Slug        content.Slug
	Name        string
	Description *string
	Color       *string
	Icon        *string
}

// New constructs a validated category.
func New(p CreateProps) (*Category, error) {
	now := time.Now().UTC()
	c := &Category{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Icon:        p.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// State is the persisted field set.
type State struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Description *string
	Color       *string
	Icon        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reconstitute rebuilds a category from storage.
func Reconstitute(s State) (*Category, error) {
	slug, err := content.NewSlug(s.Slug)
	if err != nil {
		return nil, err
	}

	c := &Category{
		ID:          s.ID,
		Slug:        slug,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		Icon:        s.Icon,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateProps carries partial updates. Nil fields are left unchanged.
type UpdateProps struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// Update applies the non-nil fields and re-validates.
func (c *Category) Update(p UpdateProps) error {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.Color != nil {
		c.Color = p.Color
	}
	if p.Icon != nil {
		c.Icon = p.Icon
	}

	c.UpdatedAt = time.Now().UTC()
	return c.validate()
}

func (c *Category) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return content.NewValidationError("Category name is required")
	}
	if len([]rune(c.Name)) > maxNameChars {
		return content.NewValidationError("Category name must be 100 characters or less")
	}
	if c.Description != nil && len([]rune(*c.Description)) > maxDescriptionChars {
		return content.NewValidationError("Category description must be 500 characters or less")
	}
	if c.Color != nil && *c.Color != "" && !colorPattern.MatchString(*c.Color) {
		return content.NewValidationError("Category color must be valid hex color (e.g., #1b4049)")
	}
	return nil
}
