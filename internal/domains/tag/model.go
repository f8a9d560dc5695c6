package tag

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/content"
)

const maxNameChars = 50

// Tag is a flat label attached to articles. Tags are write-once: they are
// created with a name and a derived slug and never renamed afterwards, so
// article associations stay stable.
type Tag struct {
	ID        uuid.UUID
	Name      string
	Slug      content.Slug
	CreatedAt time.Time
}

// New creates a tag from a display name. The slug is derived from the name.
func New(id uuid.UUID, name string) (*Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, content.NewValidationError("Tag name is required")
	}
	if len([]rune(trimmed)) > maxNameChars {
		return nil, content.NewValidationError("Tag name must be 50 characters or less")
	}

	slug, err := content.SlugFromTitle(trimmed)
	if err != nil {
		return nil, err
	}

	return &Tag{
		ID:        id,
		Name:      trimmed,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// State is the persisted field set.
type State struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Reconstitute rebuilds a tag from storage.
func Reconstitute(s State) (*Tag, error) {
	slug, err := content.NewSlug(s.Slug)
	if err != nil {
		return nil, err
	}
	return &Tag{ID: s.ID, Name: s.Name, Slug: slug, CreatedAt: s.CreatedAt}, nil
}
