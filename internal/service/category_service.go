package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
)

type CategoryService struct {
	repo *mysql.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{repo: &mysql.CategoryRepository{DB: db}}
}

// deriveIcon returns the uppercase first rune of the category name.
func deriveIcon(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// Create inserts a category owned by ownerID. An empty icon is derived from
// the name; an explicit icon is honored as given.
func (s *CategoryService) Create(ctx context.Context, ownerID, name, icon, color, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name required")
	}
	if icon == "" {
		icon = deriveIcon(name)
	}

	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Icon:        icon,
		Color:       color,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListAll is the legacy no-pagination listing, newest first.
func (s *CategoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListAll(ctx)
}

func (s *CategoryService) List(ctx context.Context, page, limit int) ([]model.Category, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit
	return s.repo.List(ctx, offset, limit)
}
