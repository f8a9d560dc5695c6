package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpress-backend/internal/domains/category"
	"finpress-backend/internal/domains/news"
	"finpress-backend/internal/domains/tag"
)

// fakeNewsRepo is an in-memory news.Repository with the same
// compare-and-swap save contract as the postgres implementation.
type fakeNewsRepo struct {
	byID    map[uuid.UUID]news.State
	tags    map[uuid.UUID][]news.TagRef
	deleted map[uuid.UUID]bool
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{
		byID:    make(map[uuid.UUID]news.State),
		tags:    make(map[uuid.UUID][]news.TagRef),
		deleted: make(map[uuid.UUID]bool),
	}
}

func (r *fakeNewsRepo) stateOf(article *news.News) news.State {
	return news.State{
		ID:             article.ID,
		Slug:           article.Slug.String(),
		CategoryID:     article.CategoryID,
		Version:        article.Version,
		LifecycleState: article.Snapshot(),
	}
}

func (r *fakeNewsRepo) Save(_ context.Context, article *news.News) error {
	stored, ok := r.byID[article.ID]
	if article.Version == 0 {
		if ok {
			return news.ErrVersionConflict
		}
		article.Version = 1
	} else {
		if !ok || stored.Version != article.Version {
			return news.ErrVersionConflict
		}
		article.Version++
	}
	r.byID[article.ID] = r.stateOf(article)
	return nil
}

func (r *fakeNewsRepo) FindByID(_ context.Context, id uuid.UUID) (*news.News, error) {
	s, ok := r.byID[id]
	if !ok || r.deleted[id] {
		return nil, news.ErrNewsNotFound
	}
	return news.Reconstitute(s)
}

func (r *fakeNewsRepo) FindBySlug(_ context.Context, slug string) (*news.News, error) {
	for id, s := range r.byID {
		if s.Slug == slug && !r.deleted[id] {
			return news.Reconstitute(s)
		}
	}
	return nil, news.ErrNewsNotFound
}

func (r *fakeNewsRepo) FindMany(_ context.Context, filter news.Filter) ([]*news.News, error) {
	var out []*news.News
	for id, s := range r.byID {
		if r.deleted[id] {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.IsFeatured != nil && s.IsFeatured != *filter.IsFeatured {
			continue
		}
		article, err := news.Reconstitute(s)
		if err != nil {
			return nil, err
		}
		out = append(out, article)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug.String() < out[j].Slug.String() })
	return out, nil
}

func (r *fakeNewsRepo) Count(_ context.Context, filter news.CountFilter) (int, error) {
	n := 0
	for id, s := range r.byID {
		if r.deleted[id] {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeNewsRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for id, s := range r.byID {
		if s.Slug == slug && !r.deleted[id] {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNewsRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok || r.deleted[id] {
		return news.ErrNewsNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *fakeNewsRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	delete(r.tags, id)
	return nil
}

func (r *fakeNewsRepo) PurgeDeletedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeNewsRepo) ReplaceTags(_ context.Context, newsID uuid.UUID, tagIDs []uuid.UUID) error {
	refs := make([]news.TagRef, 0, len(tagIDs))
	for _, id := range tagIDs {
		refs = append(refs, news.TagRef{ID: id})
	}
	r.tags[newsID] = refs
	return nil
}

func (r *fakeNewsRepo) GetTagsForNews(_ context.Context, newsID uuid.UUID) ([]news.TagRef, error) {
	return r.tags[newsID], nil
}

func (r *fakeNewsRepo) GetCategoryForNews(_ context.Context, categoryID *uuid.UUID) (*news.CategoryRef, error) {
	if categoryID == nil {
		return nil, nil
	}
	return &news.CategoryRef{ID: *categoryID, Name: "Markets", Slug: "markets"}, nil
}

type fakeCategoryRepo struct {
	byID map[uuid.UUID]*category.Category
}

func (r *fakeCategoryRepo) Save(_ context.Context, c *category.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, _ string) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]*category.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeTagRepo struct {
	byName map[string]*tag.Tag
}

func (r *fakeTagRepo) Save(_ context.Context, t *tag.Tag) error {
	r.byName[strings.ToLower(t.Name)] = t
	return nil
}

func (r *fakeTagRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	_, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return ok, nil
}

func (r *fakeTagRepo) FindByID(_ context.Context, _ uuid.UUID) (*tag.Tag, error) {
	return nil, tag.ErrTagNotFound
}

func (r *fakeTagRepo) FindBySlug(_ context.Context, _ string) (*tag.Tag, error) {
	return nil, tag.ErrTagNotFound
}

func (r *fakeTagRepo) FindAll(_ context.Context) ([]*tag.Tag, error) { return nil, nil }

func (r *fakeTagRepo) FindOrCreateByNames(_ context.Context, names []string) ([]*tag.Tag, error) {
	out := make([]*tag.Tag, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if existing, ok := r.byName[key]; ok {
			out = append(out, existing)
			continue
		}
		created, err := tag.New(uuid.New(), name)
		if err != nil {
			return nil, err
		}
		r.byName[key] = created
		out = append(out, created)
	}
	return out, nil
}

func (r *fakeTagRepo) GetPopularTags(_ context.Context, _ int) ([]tag.PopularTag, error) {
	return nil, nil
}

func (r *fakeTagRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func newTestService() (news.Service, *fakeNewsRepo, *fakeCategoryRepo) {
	repo := newFakeNewsRepo()
	categories := &fakeCategoryRepo{byID: make(map[uuid.UUID]*category.Category)}
	tags := &fakeTagRepo{byName: make(map[string]*tag.Tag)}
	return NewNewsService(repo, categories, tags), repo, categories
}

func validCreateRequest() news.CreateNewsRequest {
	return news.CreateNewsRequest{
		Title:   "Central Bank Holds Benchmark Rate",
		Content: strings.Repeat("The central bank left rates unchanged. ", 3),
		Tags:    []string{"Banking", "Rates"},
	}
}

func TestCreateNews(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	authorID := uuid.New()

	resp, err := svc.Create(ctx, authorID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "central-bank-holds-benchmark-rate", resp.Slug)
	assert.Equal(t, "DRAFT", resp.Status)
	require.NotNil(t, resp.AuthorID)
	assert.Equal(t, authorID, *resp.AuthorID)
	assert.Len(t, resp.Tags, 2)

	stored, ok := repo.byID[resp.ID]
	require.True(t, ok)
	assert.Equal(t, 1, stored.Version)
}

func TestCreateNewsDuplicateSlug(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.New(), validCreateRequest())
	assert.ErrorIs(t, err, news.ErrSlugAlreadyExists)
}

func TestCreateNewsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	missing := uuid.NewString()
	req.CategoryID = &missing

	_, err := svc.Create(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, news.ErrCategoryNotFound)
}

func TestPublishWorkflow(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	editorID := uuid.New()

	created, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)

	// Straight to publish must fail: the workflow demands a review step.
	_, err = svc.Publish(ctx, created.ID, editorID)
	require.Error(t, err)
	assert.Equal(t, "Can only publish news in REVIEW status", err.Error())

	reviewed, err := svc.SubmitForReview(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "REVIEW", reviewed.Status)

	published, err := svc.Publish(ctx, created.ID, editorID)
	require.NoError(t, err)
	assert.Equal(t, "PUBLISHED", published.Status)
	require.NotNil(t, published.EditorID)
	assert.Equal(t, editorID, *published.EditorID)
	assert.NotNil(t, published.PublishedAt)

	unpublished, err := svc.Unpublish(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", unpublished.Status)
	assert.Nil(t, unpublished.PublishedAt)
}

func TestUpdateRejectedOutsideDraft(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.SubmitForReview(ctx, created.ID)
	require.NoError(t, err)

	newTitle := "Revised headline for the rate story"
	_, err = svc.Update(ctx, created.ID, news.UpdateNewsRequest{Title: &newTitle})
	require.Error(t, err)
	assert.Equal(t, "Can only edit news in DRAFT status", err.Error())
}

func TestUpdateReplacesTagSet(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)
	require.Len(t, repo.tags[created.ID], 2)

	newTags := []string{"Macro"}
	updated, err := svc.Update(ctx, created.ID, news.UpdateNewsRequest{Tags: &newTags})
	require.NoError(t, err)
	assert.Len(t, updated.Tags, 1)

	// Nil tags leaves the association set alone.
	subtitle := "With context from the last meeting"
	updated, err = svc.Update(ctx, created.ID, news.UpdateNewsRequest{Subtitle: &subtitle})
	require.NoError(t, err)
	assert.Len(t, updated.Tags, 1)
}

func TestGetBySlugCountsViewsOnlyWhenPublished(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ViewCount)

	_, err = svc.SubmitForReview(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.Publish(ctx, created.ID, uuid.New())
	require.NoError(t, err)

	got, err = svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	got, err = svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
}

func TestDeleteThenReadFails(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetBySlug(ctx, created.Slug)
	assert.ErrorIs(t, err, news.ErrNewsNotFound)
}

func TestSetFeaturedRequiresPublished(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.SetFeatured(ctx, created.ID, true)
	require.Error(t, err)
	assert.Equal(t, "Only published news can be featured", err.Error())
}
