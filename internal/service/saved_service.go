package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
)

type SavedTopicService struct {
	repo *mysql.SavedTopicRepository
}

func NewSavedTopicService(db *gorm.DB) *SavedTopicService {
	return &SavedTopicService{repo: &mysql.SavedTopicRepository{DB: db}}
}

func (s *SavedTopicService) Toggle(ctx context.Context, topicID, userID string) (bool, error) {
	if topicID == "" || userID == "" {
		return false, errors.New("invalid id")
	}
	return s.repo.Toggle(ctx, topicID, userID)
}

func (s *SavedTopicService) ListByUser(ctx context.Context, userID string) ([]model.Topic, error) {
	topics, err := s.repo.ListTopicsByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.Topic{}, nil
	}
	return topics, err
}

func (s *SavedTopicService) IsSaved(ctx context.Context, topicID, userID string) (bool, error) {
	return s.repo.IsSaved(ctx, topicID, userID)
}
