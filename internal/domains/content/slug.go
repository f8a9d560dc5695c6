package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Slug is a URL-friendly identifier: lowercase alphanumeric segments joined
// by single hyphens, no leading/trailing hyphen, max 255 characters.
// Uniqueness is enforced at the repository level, not here.
type Slug string

const slugMaxLength = 255

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	disallowedPattern = regexp.MustCompile(`[^a-z0-9-]`)
	multiHyphen       = regexp.MustCompile(`-+`)
)

// NewSlug validates raw as-is.
func NewSlug(raw string) (Slug, error) {
	if strings.TrimSpace(raw) == "" {
		return "", NewValidationError("Slug cannot be empty")
	}

	if len(raw) > slugMaxLength {
		return "", NewValidationError(fmt.Sprintf("Slug must be %d characters or less", slugMaxLength))
	}

	if !slugPattern.MatchString(raw) {
		return "", NewValidationError(
			"Slug must contain only lowercase letters, numbers, and hyphens (no leading/trailing hyphens)",
		)
	}

	return Slug(raw), nil
}

// SlugFromTitle derives a slug from free-form title text, then validates the
// result. A title with no slug-able characters fails with a ValidationError.
func SlugFromTitle(title string) (Slug, error) {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespacePattern.ReplaceAllString(s, "-")
	s = disallowedPattern.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLength {
		s = s[:slugMaxLength]
		s = strings.TrimRight(s, "-")
	}

	return NewSlug(s)
}

// IsValidSlug reports whether raw satisfies the slug grammar.
func IsValidSlug(raw string) bool {
	_, err := NewSlug(raw)
	return err == nil
}

func (s Slug) String() string { return string(s) }
