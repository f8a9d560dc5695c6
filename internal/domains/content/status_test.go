package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"DRAFT", StatusDraft},
		{"draft", StatusDraft},
		{"Review", StatusReview},
		{"published", StatusPublished},
		{"ARCHIVED", StatusArchived},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestParseStatusInvalid(t *testing.T) {
	_, err := ParseStatus("PENDING")
	require.Error(t, err)
	assert.Equal(t, "Invalid content status: PENDING", err.Error())
	assert.True(t, IsValidationError(err))
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusReview, true},
		{StatusDraft, StatusPublished, false},
		{StatusDraft, StatusArchived, false},
		{StatusReview, StatusPublished, true},
		{StatusReview, StatusDraft, true},
		{StatusReview, StatusArchived, false},
		{StatusPublished, StatusArchived, true},
		{StatusPublished, StatusDraft, true},
		{StatusPublished, StatusReview, false},
		{StatusArchived, StatusDraft, false},
		{StatusArchived, StatusReview, false},
		{StatusArchived, StatusPublished, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusDraft.IsDraft())
	assert.True(t, StatusReview.IsReview())
	assert.True(t, StatusPublished.IsPublished())
	assert.True(t, StatusArchived.IsArchived())
	assert.False(t, StatusDraft.IsPublished())
	assert.True(t, StatusDraft.IsValid())
	assert.False(t, Status("PENDING").IsValid())
}
