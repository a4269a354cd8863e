package service

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/repository/mysql"
	"forum404/internal/repository/redis"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, redis.Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = redis.Close() })
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) model.User {
	t.Helper()
	u := model.User{ID: id, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedTopic(t *testing.T, db *gorm.DB, id, authorID string) model.Topic {
	t.Helper()
	topic := model.Topic{ID: id, Title: "t", AuthorID: authorID, CategoryID: "c1"}
	require.NoError(t, db.Create(&topic).Error)
	return topic
}
