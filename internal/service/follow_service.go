package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
)

var ErrFollowSelf = errors.New("cannot follow self")

type FollowService struct {
	repo *mysql.FollowRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{repo: &mysql.FollowRepository{DB: db}}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == "" || followedID == "" {
		return errors.New("invalid user id")
	}
	if followerID == followedID {
		return ErrFollowSelf
	}
	return s.repo.Create(ctx, followerID, followedID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if followerID == "" || followedID == "" {
		return errors.New("invalid user id")
	}
	return s.repo.Delete(ctx, followerID, followedID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, followedID)
}

// ListFollowing resolves profiles for everyone userID follows.
func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]model.User, error) {
	return s.repo.ListFollowedProfiles(ctx, userID)
}

func (s *FollowService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountFollowers(ctx, userID)
}
