package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "simple", input: "market-update"},
		{name: "alphanumeric", input: "q3-2025-earnings"},
		{name: "single segment", input: "news"},
		{name: "empty", input: "", wantErr: "Slug cannot be empty"},
		{name: "whitespace only", input: "   ", wantErr: "Slug cannot be empty"},
		{name: "uppercase", input: "Market-Update", wantErr: "Slug must contain only lowercase letters, numbers, and hyphens (no leading/trailing hyphens)"},
		{name: "leading hyphen", input: "-market", wantErr: "Slug must contain only lowercase letters, numbers, and hyphens (no leading/trailing hyphens)"},
		{name: "trailing hyphen", input: "market-", wantErr: "Slug must contain only lowercase letters, numbers, and hyphens (no leading/trailing hyphens)"},
		{name: "double hyphen", input: "market--update", wantErr: "Slug must contain only lowercase letters, numbers, and hyphens (no leading/trailing hyphens)"},
		{name: "spaces", input: "market update", wantErr: "Slug must contain only lowercase letters, numbers, and hyphens (no leading/trailing hyphens)"},
		{name: "too long", input: strings.Repeat("a", 256), wantErr: "Slug must be 255 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, err := NewSlug(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, slug.String())
		})
	}
}

func TestNewSlugMaxLengthBoundary(t *testing.T) {
	slug, err := NewSlug(strings.Repeat("a", 255))
	require.NoError(t, err)
	assert.Len(t, slug.String(), 255)
}

func TestSlugFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "basic", title: "Market Update", want: "market-update"},
		{name: "punctuation stripped", title: "BBRI: Buy, Sell, or Hold?", want: "bbri-buy-sell-or-hold"},
		{name: "extra whitespace", title: "  Quarterly   Report  ", want: "quarterly-report"},
		{name: "mixed case", title: "Fed RAISES Rates", want: "fed-raises-rates"},
		{name: "unicode stripped", title: "Café Économie 2025", want: "caf-conomie-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, err := SlugFromTitle(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slug.String())
			assert.True(t, IsValidSlug(slug.String()))
		})
	}
}

func TestSlugFromTitleIdempotent(t *testing.T) {
	first, err := SlugFromTitle("The 2025 Outlook: Banks & Energy")
	require.NoError(t, err)

	second, err := SlugFromTitle(first.String())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSlugFromTitleNoUsableCharacters(t *testing.T) {
	_, err := SlugFromTitle("!!! ???")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestSlugFromTitleTruncates(t *testing.T) {
	slug, err := SlugFromTitle(strings.Repeat("word ", 100))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(slug.String()), 255)
	assert.False(t, strings.HasSuffix(slug.String(), "-"))
}
