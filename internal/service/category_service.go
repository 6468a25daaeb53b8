package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create adds a named category for the user. A duplicate name is a benign
// no-op returning the existing row, so creating twice leaves one category.
func (s *CategoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "required")
	}

	existing, err := s.repo.FindByName(ctx, userID, name)
	switch {
	case err == nil:
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		category := model.Category{UserID: userID, Name: name}
		if err := s.repo.Create(ctx, &category); err != nil {
			return nil, err
		}
		return &category, nil
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}
