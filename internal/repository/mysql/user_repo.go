package mysql

import (
	"context"

	"gorm.io/gorm"

	"forum404/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// UpdateProfile applies the given column updates and returns the fresh row.
// gorm stamps updated_at on every call, matching the PATCH contract.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, updates map[string]any) (*model.User, error) {
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id, url string) (*model.User, error) {
	return r.UpdateProfile(ctx, id, map[string]any{"profile_picture": url})
}
