package mysql

import (
	"context"

	"gorm.io/gorm"

	"forum404/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&post).Error
	return &post, err
}

// List returns comments oldest first so threads read top to bottom.
func (r *PostRepository) List(ctx context.Context, topicID, authorID string) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{})
	if topicID != "" {
		q = q.Where("topic_id = ?", topicID)
	}
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	var posts []model.Post
	err := q.Order("created_at ASC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, postID, authorID string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND author_id = ?", postID, authorID).
		Delete(&model.Post{})
	return res.RowsAffected, res.Error
}
