package service

import (
	"context"
	"errors"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, apierror.Conflict("a category with this name already exists")
	}

	cat := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapCategory(cat)
	return &resp, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	cat, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapCategory(cat)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.CategoryResponse, len(cats))
	for i := range cats {
		resp[i] = mapCategory(&cats[i])
	}
	return resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != cat.Name {
		if existing, err := s.repo.FindByName(ctx, *req.Name); err == nil && existing != nil {
			return nil, apierror.Conflict("a category with this name already exists")
		}
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = req.Description
	}
	if req.Active != nil {
		cat.Active = *req.Active
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapCategory(cat)
	return &resp, nil
}

// Deactivate hides the category. Services keep their category_id; the
// listing simply stops offering the group for new filters.
func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func (s *categoryService) findCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("category not found")
		}
		return nil, apierror.Internal(err)
	}
	return cat, nil
}

func mapCategory(cat *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Description: cat.Description,
		Active:      cat.Active,
	}
}
