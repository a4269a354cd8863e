package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
)

var (
	ErrEmptyQuery        = errors.New("Query and type are required")
	ErrInvalidSearchType = errors.New("Invalid type")
)

type SearchService struct {
	repo *mysql.SearchRepository
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{repo: &mysql.SearchRepository{DB: db}}
}

// SearchResult carries whichever entity slice matched the requested type.
type SearchResult struct {
	Topics     []model.Topic
	Users      []model.User
	Categories []model.Category
	Total      int64
}

// Search splits the query on whitespace and requires every word to match at
// least one of the type's fields.
func (s *SearchService) Search(ctx context.Context, query, typ string, page, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" || typ == "" {
		return nil, ErrEmptyQuery
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit
	words := strings.Fields(query)

	var res SearchResult
	var err error
	switch typ {
	case "topics":
		res.Topics, res.Total, err = s.repo.SearchTopics(ctx, words, offset, limit)
	case "users":
		res.Users, res.Total, err = s.repo.SearchUsers(ctx, words, offset, limit)
	case "categories":
		res.Categories, res.Total, err = s.repo.SearchCategories(ctx, words, offset, limit)
	default:
		return nil, ErrInvalidSearchType
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
