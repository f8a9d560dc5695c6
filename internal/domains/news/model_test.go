package news

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpress-backend/internal/domains/content"
)

func draftArticle(t *testing.T) *News {
	t.Helper()

	authorID := uuid.New()
	slug, err := content.SlugFromTitle("Central Bank Holds Rates")
	require.NoError(t, err)

	article, err := New(CreateProps{
		ID:       uuid.New(),
		Slug:     slug,
		Title:    "Central Bank Holds Rates",
		Content:  "The central bank left its benchmark rate unchanged.",
		AuthorID: &authorID,
	})
	require.NoError(t, err)
	return article
}

func publishedArticle(t *testing.T) *News {
	t.Helper()

	article := draftArticle(t)
	require.NoError(t, article.SubmitForReview())
	require.NoError(t, article.Publish(uuid.New()))
	return article
}

func TestNewStartsInDraft(t *testing.T) {
	article := draftArticle(t)

	assert.Equal(t, content.StatusDraft, article.Status)
	assert.Equal(t, 0, article.ViewCount)
	assert.Equal(t, 0, article.Version)
	assert.Nil(t, article.EditorID)
	assert.Nil(t, article.PublishedAt)
}

func TestNewValidation(t *testing.T) {
	slug, err := content.SlugFromTitle("some-title")
	require.NoError(t, err)

	tests := []struct {
		name    string
		title   string
		content string
		wantErr string
	}{
		{name: "empty title", title: "", content: "body", wantErr: "Title is required"},
		{name: "whitespace title", title: "   ", content: "body", wantErr: "Title is required"},
		{name: "single char title ok", title: "A", content: "body"},
		{name: "max title ok", title: strings.Repeat("a", 500), content: "body"},
		{name: "title too long", title: strings.Repeat("a", 501), content: "body", wantErr: "Title must be 500 characters or less"},
		{name: "empty content", title: "Title", content: "", wantErr: "Content is required"},
		{name: "single char content ok", title: "Title", content: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(CreateProps{ID: uuid.New(), Slug: slug, Title: tt.title, Content: tt.content})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, content.IsValidationError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSubmitForReview(t *testing.T) {
	article := draftArticle(t)

	require.NoError(t, article.SubmitForReview())
	assert.Equal(t, content.StatusReview, article.Status)

	err := article.SubmitForReview()
	require.Error(t, err)
	assert.Equal(t, "Can only submit DRAFT news for review", err.Error())
	assert.True(t, content.IsTransitionError(err))
}

func TestPublishFlow(t *testing.T) {
	article := draftArticle(t)
	editorID := uuid.New()

	err := article.Publish(editorID)
	require.Error(t, err)
	assert.Equal(t, "Can only publish news in REVIEW status", err.Error())

	require.NoError(t, article.SubmitForReview())
	require.NoError(t, article.Publish(editorID))

	assert.Equal(t, content.StatusPublished, article.Status)
	require.NotNil(t, article.EditorID)
	assert.Equal(t, editorID, *article.EditorID)
	assert.NotNil(t, article.PublishedAt)
}

func TestUnpublishClearsPublishedAt(t *testing.T) {
	article := publishedArticle(t)

	require.NoError(t, article.Unpublish())
	assert.Equal(t, content.StatusDraft, article.Status)
	assert.Nil(t, article.PublishedAt)

	err := article.Unpublish()
	require.Error(t, err)
	assert.Equal(t, "Can only unpublish PUBLISHED news", err.Error())
}

func TestArchive(t *testing.T) {
	article := publishedArticle(t)

	require.NoError(t, article.Archive())
	assert.Equal(t, content.StatusArchived, article.Status)
	assert.NotNil(t, article.ArchivedAt)

	err := article.Archive()
	require.Error(t, err)
	assert.Equal(t, "Can only archive PUBLISHED news", err.Error())
}

func TestArchivedIsTerminal(t *testing.T) {
	article := publishedArticle(t)
	require.NoError(t, article.Archive())

	assert.Error(t, article.SubmitForReview())
	assert.Error(t, article.Publish(uuid.New()))
	assert.Error(t, article.Unpublish())
	assert.Error(t, article.Update(content.ContentUpdate{}))
}

func TestUpdateOnlyInDraft(t *testing.T) {
	newTitle := "Revised headline"

	for _, advance := range []struct {
		name  string
		setup func(*testing.T) *News
	}{
		{name: "review", setup: func(t *testing.T) *News {
			a := draftArticle(t)
			require.NoError(t, a.SubmitForReview())
			return a
		}},
		{name: "published", setup: func(t *testing.T) *News {
			return publishedArticle(t)
		}},
		{name: "archived", setup: func(t *testing.T) *News {
			a := publishedArticle(t)
			require.NoError(t, a.Archive())
			return a
		}},
	} {
		t.Run(advance.name, func(t *testing.T) {
			article := advance.setup(t)
			err := article.Update(content.ContentUpdate{Title: &newTitle})
			require.Error(t, err)
			assert.Equal(t, "Can only edit news in DRAFT status", err.Error())
			assert.True(t, content.IsTransitionError(err))
		})
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	article := draftArticle(t)
	originalContent := article.Content

	newTitle := "Revised headline"
	subtitle := "A closer look"
	require.NoError(t, article.Update(content.ContentUpdate{Title: &newTitle, Subtitle: &subtitle}))

	assert.Equal(t, newTitle, article.Title)
	require.NotNil(t, article.Subtitle)
	assert.Equal(t, subtitle, *article.Subtitle)
	assert.Equal(t, originalContent, article.Content)
}

func TestUpdateRejectsInvalidFields(t *testing.T) {
	article := draftArticle(t)

	empty := ""
	err := article.Update(content.ContentUpdate{Title: &empty})
	require.Error(t, err)
	assert.Equal(t, "Title is required", err.Error())
}

func TestSetFeatured(t *testing.T) {
	article := draftArticle(t)

	err := article.SetFeatured(true)
	require.Error(t, err)
	assert.Equal(t, "Only published news can be featured", err.Error())

	// Clearing the flag is allowed in any status.
	require.NoError(t, article.SetFeatured(false))

	published := publishedArticle(t)
	require.NoError(t, published.SetFeatured(true))
	assert.True(t, published.IsFeatured)

	require.NoError(t, published.Archive())
	require.NoError(t, published.SetFeatured(false))
	assert.False(t, published.IsFeatured)
}

func TestIncrementViews(t *testing.T) {
	article := draftArticle(t)
	article.IncrementViews()
	assert.Equal(t, 0, article.ViewCount)

	published := publishedArticle(t)
	published.IncrementViews()
	published.IncrementViews()
	assert.Equal(t, 2, published.ViewCount)
}

func TestSetCategoryOnlyInDraft(t *testing.T) {
	article := draftArticle(t)
	categoryID := uuid.New()

	require.NoError(t, article.SetCategory(&categoryID))
	require.NotNil(t, article.CategoryID)
	assert.Equal(t, categoryID, *article.CategoryID)

	require.NoError(t, article.SubmitForReview())
	err := article.SetCategory(nil)
	require.Error(t, err)
	assert.True(t, content.IsTransitionError(err))
}

func TestReconstituteRoundTrip(t *testing.T) {
	article := publishedArticle(t)
	article.Version = 3

	rebuilt, err := Reconstitute(State{
		ID:             article.ID,
		Slug:           article.Slug.String(),
		CategoryID:     article.CategoryID,
		Version:        article.Version,
		LifecycleState: article.Snapshot(),
	})
	require.NoError(t, err)

	assert.Equal(t, article.ID, rebuilt.ID)
	assert.Equal(t, article.Slug, rebuilt.Slug)
	assert.Equal(t, article.Status, rebuilt.Status)
	assert.Equal(t, article.Version, rebuilt.Version)
	assert.Equal(t, article.Title, rebuilt.Title)
}

func TestReconstituteRejectsCorruptState(t *testing.T) {
	article := draftArticle(t)
	state := State{
		ID:             article.ID,
		Slug:           article.Slug.String(),
		LifecycleState: article.Snapshot(),
	}
	state.Status = "PENDING"

	_, err := Reconstitute(state)
	require.Error(t, err)
	assert.Equal(t, "Invalid content status: PENDING", err.Error())
}
