package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"forum404/internal/model"
)

type SearchRepository struct {
	DB *gorm.DB
}

// wordMatch builds the per-word condition: the word must appear in at least
// one of the fields. Conditions for separate words are ANDed by the caller.
func wordMatch(q *gorm.DB, word string, fields []string) *gorm.DB {
	pattern := "%" + strings.ToLower(word) + "%"
	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		clauses[i] = "LOWER(" + f + ") LIKE ?"
		args[i] = pattern
	}
	return q.Where(strings.Join(clauses, " OR "), args...)
}

// SearchTopics matches every word against title or content (AND across
// words, OR across fields per word), case-insensitive substring.
func (r *SearchRepository) SearchTopics(ctx context.Context, words []string, offset, limit int) ([]model.Topic, int64, error) {
	build := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&model.Topic{})
		for _, w := range words {
			q = wordMatch(q, w, []string{"title", "content"})
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

func (r *SearchRepository) SearchUsers(ctx context.Context, words []string, offset, limit int) ([]model.User, int64, error) {
	build := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&model.User{})
		for _, w := range words {
			q = wordMatch(q, w, []string{"first_name", "last_name", "email"})
		}
		return q
	}
	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []model.User
	err := build().Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *SearchRepository) SearchCategories(ctx context.Context, words []string, offset, limit int) ([]model.Category, int64, error) {
	build := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&model.Category{})
		for _, w := range words {
			q = wordMatch(q, w, []string{"name", "description"})
		}
		return q
	}
	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var categories []model.Category
	err := build().Order("created_at DESC").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}
