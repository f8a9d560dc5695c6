package tag

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpress-backend/internal/domains/content"
)

func TestNewTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantSlug string
		wantErr  string
	}{
		{name: "simple", input: "Banking", wantName: "Banking", wantSlug: "banking"},
		{name: "trims and slugifies", input: "  Interest Rates  ", wantName: "Interest Rates", wantSlug: "interest-rates"},
		{name: "max length", input: strings.Repeat("a", 50), wantName: strings.Repeat("a", 50), wantSlug: strings.Repeat("a", 50)},
		{name: "empty", input: "   ", wantErr: "Tag name is required"},
		{name: "too long", input: strings.Repeat("a", 51), wantErr: "Tag name must be 50 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := New(uuid.New(), tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, content.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tag.Name)
			assert.Equal(t, tt.wantSlug, tag.Slug.String())
		})
	}
}

func TestNewTagRejectsUnslugifiableName(t *testing.T) {
	_, err := New(uuid.New(), "!!!")
	require.Error(t, err)
}
