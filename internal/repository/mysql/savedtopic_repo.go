package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forum404/internal/model"
)

type SavedTopicRepository struct {
	DB *gorm.DB
}

// Toggle flips the (topic, user) saved row. No counter to maintain, so the
// transaction only covers check plus write.
func (r *SavedTopicRepository) Toggle(ctx context.Context, topicID, userID string) (bool, error) {
	var saved bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.SavedTopic
		err := tx.Where("topic_id = ? AND user_id = ?", topicID, userID).First(&row).Error
		switch {
		case err == nil:
			saved = false
			return tx.Delete(&row).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			saved = true
			return tx.Create(&model.SavedTopic{
				ID:      uuid.NewString(),
				TopicID: topicID,
				UserID:  userID,
			}).Error
		default:
			return err
		}
	})
	return saved, err
}

// ListTopicsByUser returns the saved topics, most recently saved first.
func (r *SavedTopicRepository) ListTopicsByUser(ctx context.Context, userID string) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.WithContext(ctx).Model(&model.Topic{}).
		Joins("JOIN saved_topics ON saved_topics.topic_id = topics.id").
		Where("saved_topics.user_id = ?", userID).
		Order("saved_topics.created_at DESC").
		Find(&topics).Error
	return topics, err
}

func (r *SavedTopicRepository) IsSaved(ctx context.Context, topicID, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SavedTopic{}).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Count(&count).Error
	return count > 0, err
}
