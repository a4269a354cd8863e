package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
)

type SubscriptionService struct {
	repo *mysql.SubscriptionRepository
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{repo: &mysql.SubscriptionRepository{DB: db}}
}

// Create subscribes userID to a topic or a category (exactly one of the two).
func (s *SubscriptionService) Create(ctx context.Context, userID string, topicID, categoryID *string) (*model.Subscription, error) {
	if userID == "" {
		return nil, errors.New("user required")
	}
	if (topicID == nil) == (categoryID == nil) {
		return nil, errors.New("exactly one of topic_id or category_id required")
	}

	sub := &model.Subscription{
		ID:         uuid.NewString(),
		UserID:     userID,
		TopicID:    topicID,
		CategoryID: categoryID,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) ListByUser(ctx context.Context, userID string) ([]model.Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}
