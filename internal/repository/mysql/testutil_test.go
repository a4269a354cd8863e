package mysql

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"forum404/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) model.User {
	t.Helper()
	u := model.User{ID: id, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedTopic(t *testing.T, db *gorm.DB, id, authorID, title string) model.Topic {
	t.Helper()
	topic := model.Topic{ID: id, Title: title, AuthorID: authorID, CategoryID: "cat-1"}
	require.NoError(t, db.Create(&topic).Error)
	return topic
}
