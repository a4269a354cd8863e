package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
)

var ErrNotPostAuthor = errors.New("only the author can delete this post")

type PostService struct {
	repo *mysql.PostRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{repo: &mysql.PostRepository{DB: db}}
}

func (s *PostService) Create(ctx context.Context, authorID, topicID, content string) (*model.Post, error) {
	if topicID == "" {
		return nil, errors.New("topic required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content required")
	}

	post := &model.Post{
		ID:       uuid.NewString(),
		TopicID:  topicID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, topicID, authorID string) ([]model.Post, error) {
	return s.repo.List(ctx, topicID, authorID)
}

func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	affected, err := s.repo.DeleteByAuthor(ctx, postID, actorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, postID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return ErrNotPostAuthor
	}
	return nil
}
