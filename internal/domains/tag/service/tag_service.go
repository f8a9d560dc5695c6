package service

import (
	"context"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/tag"
)

type tagService struct {
	repo tag.Repository
}

// NewTagService wires the tag application service.
func NewTagService(repo tag.Repository) tag.Service {
	return &tagService{repo: repo}
}

func (s *tagService) Create(ctx context.Context, req tag.CreateTagRequest) (*tag.TagResponse, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, tag.ErrTagAlreadyExists
	}

	created, err := tag.New(uuid.New(), req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, created); err != nil {
		return nil, err
	}

	resp := tag.ToResponse(created)
	return &resp, nil
}

func (s *tagService) List(ctx context.Context) ([]tag.TagResponse, error) {
	tags, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]tag.TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, tag.ToResponse(t))
	}
	return responses, nil
}

func (s *tagService) GetBySlug(ctx context.Context, slug string) (*tag.TagResponse, error) {
	t, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := tag.ToResponse(t)
	return &resp, nil
}

func (s *tagService) GetPopular(ctx context.Context, limit int) ([]tag.PopularTagResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	popular, err := s.repo.GetPopularTags(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]tag.PopularTagResponse, 0, len(popular))
	for _, p := range popular {
		responses = append(responses, tag.PopularTagResponse{
			TagResponse: tag.ToResponse(p.Tag),
			UsageCount:  p.UsageCount,
		})
	}
	return responses, nil
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
