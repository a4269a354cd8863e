package mysql

import (
	"context"

	"gorm.io/gorm"

	"forum404/internal/model"
)

type TopicRepository struct {
	DB *gorm.DB
}

// TopicFilter narrows a topic listing. Zero values mean "no filter".
type TopicFilter struct {
	CategoryID string
	AuthorID   string
}

func (r *TopicRepository) Create(ctx context.Context, t *model.Topic) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TopicRepository) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&topic).Error
	return &topic, err
}

// List returns a page of topics, newest first, plus the unfiltered-page total
// for the pagination envelope.
func (r *TopicRepository) List(ctx context.Context, f TopicFilter, offset, limit int) ([]model.Topic, int64, error) {
	build := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&model.Topic{})
		if f.CategoryID != "" {
			q = q.Where("category_id = ?", f.CategoryID)
		}
		if f.AuthorID != "" {
			q = q.Where("author_id = ?", f.AuthorID)
		}
		return q
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var topics []model.Topic
	err := build().Order("created_at DESC").Offset(offset).Limit(limit).Find(&topics).Error
	return topics, total, err
}

// DeleteByAuthor removes a topic only when authorID owns it. Returns the
// number of rows removed so the caller can tell "not yours" from "gone".
func (r *TopicRepository) DeleteByAuthor(ctx context.Context, topicID, authorID string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND author_id = ?", topicID, authorID).
		Delete(&model.Topic{})
	return res.RowsAffected, res.Error
}
