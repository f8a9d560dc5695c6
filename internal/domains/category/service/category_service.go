package service

import (
	"context"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/category"
	"finpress-backend/internal/domains/content"
)

type categoryService struct {
	repo category.Repository
}

// NewCategoryService wires the category application service.
func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.CategoryResponse, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, category.ErrCategoryAlreadyExists
	}

	slug, err := content.SlugFromTitle(req.Name)
	if err != nil {
		return nil, err
	}

	c, err := category.New(category.CreateProps{
		ID:          uuid.New(),
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := category.ToResponse(c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		exists, err := s.repo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, category.ErrCategoryAlreadyExists
		}
	}

	err = c.Update(category.UpdateProps{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := category.ToResponse(c)
	return &resp, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.CategoryResponse, error) {
	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := category.ToResponse(c)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context) ([]category.CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]category.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, category.ToResponse(c))
	}
	return responses, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
