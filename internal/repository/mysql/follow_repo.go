package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forum404/internal/model"
)

var ErrAlreadyFollowing = errors.New("Already following")

type FollowRepository struct {
	DB *gorm.DB
}

// Create inserts the (follower, followed) edge. The existence check runs
// inside the transaction and the unique index backstops races between
// concurrent duplicate follows.
func (r *FollowRepository) Create(ctx context.Context, followerID, followedID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Follow{}).
			Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}
		if err := tx.Create(&model.Follow{
			ID:         uuid.NewString(),
			FollowerID: followerID,
			FollowedID: followedID,
		}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "follow", followerID, followedID)
	})
}

// Delete removes the edge; idempotent, missing rows are not an error.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return insertOutbox(tx, "unfollow", followerID, followedID)
	})
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// ListFollowedProfiles resolves the users that userID follows.
func (r *FollowRepository) ListFollowedProfiles(ctx context.Context, userID string) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, err
}
