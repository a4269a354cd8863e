package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum404/internal/model"
)

func TestSearchTopicsAndOfWords(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	require.NoError(t, db.Create(&model.Topic{
		ID: "t1", AuthorID: "u1", CategoryID: "c1",
		Title: "Go concurrency patterns", Content: "channels and goroutines",
	}).Error)
	require.NoError(t, db.Create(&model.Topic{
		ID: "t2", AuthorID: "u1", CategoryID: "c1",
		Title: "Slow cooking", Content: "let it go for hours",
	}).Error)

	repo := &SearchRepository{DB: db}
	ctx := context.Background()

	// Each word may hit a different field; both must match somewhere.
	topics, total, err := repo.SearchTopics(ctx, []string{"GO", "channels"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, topics, 1)
	assert.Equal(t, "t1", topics[0].ID)

	// A single word matches both rows.
	_, total, err = repo.SearchTopics(ctx, []string{"go"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// A word matching nothing excludes everything.
	_, total, err = repo.SearchTopics(ctx, []string{"go", "zzz"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestSearchUsersFields(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&model.User{
		ID: "u1", Email: "ada@example.com", PasswordHash: "x",
		FirstName: "Ada", LastName: "Lovelace",
	}).Error)
	require.NoError(t, db.Create(&model.User{
		ID: "u2", Email: "grace@example.com", PasswordHash: "x",
		FirstName: "Grace", LastName: "Hopper",
	}).Error)

	repo := &SearchRepository{DB: db}
	users, total, err := repo.SearchUsers(context.Background(), []string{"ada"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestSearchCategoriesPagination(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&model.Category{ID: "c1", Name: "General", Icon: "G", OwnerID: "u1", Description: "anything goes"}).Error)
	require.NoError(t, db.Create(&model.Category{ID: "c2", Name: "Generators", Icon: "G", OwnerID: "u1", Description: "power stuff"}).Error)

	repo := &SearchRepository{DB: db}
	cats, total, err := repo.SearchCategories(context.Background(), []string{"gener"}, 0, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, cats, 1)
}
