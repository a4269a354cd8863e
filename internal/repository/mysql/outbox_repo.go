package mysql

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"forum404/internal/model"
)

// insertOutbox appends an engagement event row inside the caller's
// transaction so the event commits or rolls back with the toggle.
func insertOutbox(tx *gorm.DB, event, actorID, subjectID string) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor_id":   actorID,
		"subject_id": subjectID,
	})
	return tx.Create(&model.EngagementOutbox{
		EventType: event,
		ActorID:   actorID,
		SubjectID: subjectID,
		Payload:   string(payload),
		Status:    0,
	}).Error
}

type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.EngagementOutbox, error) {
	var list []model.EngagementOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// LikeReconcilerRepository recomputes topics.likes from the topic_likes
// relation. The counter is transactional on the write path, but failed
// deploys or manual edits can still leave drift behind.
type LikeReconcilerRepository struct {
	DB *gorm.DB
}

// TopicCount pairs a topic with its stored counter value.
type TopicCount struct {
	ID    string
	Likes int64
}

func (r *LikeReconcilerRepository) ListTopics(ctx context.Context, batchSize int, lastID string) ([]TopicCount, string, error) {
	var list []TopicCount
	if err := r.DB.WithContext(ctx).Model(&model.Topic{}).
		Select("id", "likes").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

func (r *LikeReconcilerRepository) RealCount(ctx context.Context, topicID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TopicLike{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}

func (r *LikeReconcilerRepository) FixCount(ctx context.Context, topicID string, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.Topic{}).Where("id = ?", topicID).
		UpdateColumn("likes", real).Error
}
