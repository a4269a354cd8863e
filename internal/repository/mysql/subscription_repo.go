package mysql

import (
	"context"

	"gorm.io/gorm"

	"forum404/internal/model"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *model.Subscription) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}
