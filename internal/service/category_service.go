package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/repository"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// CategoryService manages issue categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns every category ordered by id.
func (s *CategoryService) List(ctx context.Context) ([]domain.IssueCategory, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return categories, nil
}

// Create adds a category. Names must be non-blank and unique.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.IssueCategory, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	category := &domain.IssueCategory{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError("Category name already exists", map[string]any{"category_name": name})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return category, nil
}

// Rename changes the name of category id.
func (s *CategoryService) Rename(ctx context.Context, id int, name string) (*domain.IssueCategory, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	category := &domain.IssueCategory{ID: id, Name: name}
	if err := s.categories.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": id})
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.NewValidationError("Another category with this name already exists",
				map[string]any{"category_name": name})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return category, nil
}

// Delete removes category id.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("category_name is required", map[string]any{"category_name": "is required"})
	}
	return nil
}
