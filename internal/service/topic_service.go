package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
	"forum404/internal/repository/redis"
)

var (
	ErrTopicNotFound  = errors.New("topic not found")
	ErrNotTopicAuthor = errors.New("only the author can delete this topic")
)

type TopicService struct {
	repo      *mysql.TopicRepository
	likeRepo  *mysql.TopicLikeRepository
	likeCache *redis.LikeCountCache
}

func NewTopicService(db *gorm.DB) *TopicService {
	return &TopicService{
		repo:      &mysql.TopicRepository{DB: db},
		likeRepo:  &mysql.TopicLikeRepository{DB: db},
		likeCache: &redis.LikeCountCache{},
	}
}

func (s *TopicService) Create(ctx context.Context, authorID, categoryID, title, content string, isHot, isQuestion bool) (*model.Topic, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title required")
	}
	if categoryID == "" {
		return nil, errors.New("category required")
	}

	topic := &model.Topic{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		CategoryID: categoryID,
		IsHot:      isHot,
		IsQuestion: isQuestion,
	}
	if err := s.repo.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) List(ctx context.Context, f mysql.TopicFilter, page, limit int) ([]model.Topic, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	offset := (page - 1) * limit
	return s.repo.List(ctx, f, offset, limit)
}

func (s *TopicService) Get(ctx context.Context, id string) (*model.Topic, error) {
	topic, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopicNotFound
	}
	return topic, err
}

// Delete removes a topic, author-only. Distinguishes "not yours" from
// "already gone": deleting a missing topic is idempotent success.
func (s *TopicService) Delete(ctx context.Context, actorID, topicID string) error {
	affected, err := s.repo.DeleteByAuthor(ctx, topicID, actorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, topicID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return ErrNotTopicAuthor
	}
	return nil
}

// ToggleLike flips the like relation and returns the resulting state plus
// the fresh counter. The cached count is dropped so readers refill it.
func (s *TopicService) ToggleLike(ctx context.Context, topicID, userID string) (bool, int64, error) {
	liked, likes, err := s.likeRepo.Toggle(ctx, topicID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrTopicNotFound
		}
		return false, 0, err
	}
	_ = s.likeCache.Delete(ctx, topicID)
	return liked, likes, nil
}

// LikeCount reads through the redis cache, falling back to the database.
func (s *TopicService) LikeCount(ctx context.Context, topicID string) (int64, error) {
	if v, ok, err := s.likeCache.Get(ctx, topicID); err == nil && ok {
		return v, nil
	}
	count, err := s.likeRepo.CountByTopic(ctx, topicID)
	if err != nil {
		return 0, err
	}
	_ = s.likeCache.Set(ctx, topicID, count)
	return count, nil
}

func (s *TopicService) IsLiked(ctx context.Context, topicID, userID string) (bool, error) {
	return s.likeRepo.IsLiked(ctx, topicID, userID)
}
