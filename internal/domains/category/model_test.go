package category

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpress-backend/internal/domains/content"
)

func strPtr(s string) *string { return &s }

func TestNewCategory(t *testing.T) {
	slug, err := content.SlugFromTitle("Market News")
	require.NoError(t, err)

	tests := []struct {
		name    string
		props   CreateProps
		wantErr string
	}{
		{
			name:  "valid with all fields",
			props: CreateProps{ID: uuid.New(), Slug: slug, Name: "Market News", Description: strPtr("Daily market coverage"), Color: strPtr("#1b4049"), Icon: strPtr("chart-line")},
		},
		{
			name:  "valid minimal",
			props: CreateProps{ID: uuid.New(), Slug: slug, Name: "Market News"},
		},
		{
			name:    "empty name",
			props:   CreateProps{ID: uuid.New(), Slug: slug, Name: "   "},
			wantErr: "Category name is required",
		},
		{
			name:    "name too long",
			props:   CreateProps{ID: uuid.New(), Slug: slug, Name: strings.Repeat("a", 101)},
			wantErr: "Category name must be 100 characters or less",
		},
		{
			name:    "description too long",
			props:   CreateProps{ID: uuid.New(), Slug: slug, Name: "Market News", Description: strPtr(strings.Repeat("a", 501))},
			wantErr: "Category description must be 500 characters or less",
		},
		{
			name:    "bad color",
			props:   CreateProps{ID: uuid.New(), Slug: slug, Name: "Market News", Color: strPtr("blue")},
			wantErr: "Category color must be valid hex color (e.g., #1b4049)",
		},
		{
			name:    "shorthand hex rejected",
			props:   CreateProps{ID: uuid.New(), Slug: slug, Name: "Market News", Color: strPtr("#fff")},
			wantErr: "Category color must be valid hex color (e.g., #1b4049)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.props)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, content.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.props.Name, c.Name)
		})
	}
}

func TestCategoryUpdate(t *testing.T) {
	slug, err := content.SlugFromTitle("Market News")
	require.NoError(t, err)

	c, err := New(CreateProps{ID: uuid.New(), Slug: slug, Name: "Market News"})
	require.NoError(t, err)

	require.NoError(t, c.Update(UpdateProps{Name: strPtr("Markets"), Color: strPtr("#0A0B0C")}))
	assert.Equal(t, "Markets", c.Name)
	require.NotNil(t, c.Color)
	assert.Equal(t, "#0A0B0C", *c.Color)

	err = c.Update(UpdateProps{Color: strPtr("#0A0B0")})
	require.Error(t, err)
	assert.Equal(t, "Category color must be valid hex color (e.g., #1b4049)", err.Error())
}
