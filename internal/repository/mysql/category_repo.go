package mysql

import (
	"context"

	"gorm.io/gorm"

	"forum404/internal/model"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error
	return &category, err
}

// ListAll returns every category, newest first. Used by the legacy
// no-pagination GET path.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) List(ctx context.Context, offset, limit int) ([]model.Category, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var categories []model.Category
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&categories).Error
	return categories, total, err
}
