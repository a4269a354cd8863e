package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forum404/internal/model"
)

type TopicLikeRepository struct {
	DB *gorm.DB
}

// Toggle flips the (topic, user) like row and moves the denormalized counter
// in the same transaction, so the junction table and topics.likes cannot
// drift on the write path. Returns the resulting state and counter.
func (r *TopicLikeRepository) Toggle(ctx context.Context, topicID, userID string) (bool, int64, error) {
	var liked bool
	var likes int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic model.Topic
		// Lock the topic row so concurrent toggles serialize on the counter.
		// sqlite has no FOR UPDATE; its writes serialize on the file anyway.
		q := tx.Where("id = ?", topicID)
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&topic).Error; err != nil {
			return err
		}

		var like model.TopicLike
		err := tx.Where("topic_id = ? AND user_id = ?", topicID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Topic{}).Where("id = ?", topicID).
				UpdateColumn("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			liked = false
			if err := insertOutbox(tx, "unlike", userID, topicID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = model.TopicLike{ID: uuid.NewString(), TopicID: topicID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Topic{}).Where("id = ?", topicID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			liked = true
			if err := insertOutbox(tx, "like", userID, topicID); err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&model.Topic{}).Where("id = ?", topicID).
			Select("likes").Scan(&likes).Error
	})
	return liked, likes, err
}

func (r *TopicLikeRepository) IsLiked(ctx context.Context, topicID, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TopicLike{}).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *TopicLikeRepository) CountByTopic(ctx context.Context, topicID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TopicLike{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}
