package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// CategoryService handles the category catalog. Reads are public; every
// mutation is admin-only.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CategoryInput struct {
	Name string `json:"name"`
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, actor auth.Actor, in CategoryInput) (*models.Category, error) {
	if err := auth.Authorize(actor, auth.ActionManageCategory, 0); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateCategoryName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, actor auth.Actor, id uint, in CategoryInput) (*models.Category, error) {
	if err := auth.Authorize(actor, auth.ActionManageCategory, 0); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateCategoryName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category and detaches it from every post that carries it.
func (s *CategoryService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if err := auth.Authorize(actor, auth.ActionManageCategory, 0); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
