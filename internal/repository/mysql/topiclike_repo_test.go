package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"forum404/internal/model"
)

func TestToggleLikePair(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedTopic(t, db, "t1", "u1", "hello")
	repo := &TopicLikeRepository{DB: db}
	ctx := context.Background()

	liked, likes, err := repo.Toggle(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, likes)

	isLiked, err := repo.IsLiked(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.True(t, isLiked)

	// Second toggle undoes the first completely.
	liked, likes, err = repo.Toggle(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, likes)

	count, err := repo.CountByTopic(ctx, "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	var topic model.Topic
	require.NoError(t, db.First(&topic, "id = ?", "t1").Error)
	assert.EqualValues(t, 0, topic.Likes)

	var events []model.EngagementOutbox
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "like", events[0].EventType)
	assert.Equal(t, "unlike", events[1].EventType)
	assert.Equal(t, "u1", events[0].ActorID)
	assert.Equal(t, "t1", events[0].SubjectID)
}

func TestToggleLikeMissingTopic(t *testing.T) {
	db := setupDB(t)
	repo := &TopicLikeRepository{DB: db}

	_, _, err := repo.Toggle(context.Background(), "nope", "u1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestToggleLikeCounterNeverNegative(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedTopic(t, db, "t1", "u1", "hello")
	// Junction row exists but the counter already reads zero, as after a
	// botched manual edit. The unlike path must not go below zero.
	require.NoError(t, db.Create(&model.TopicLike{ID: "l1", TopicID: "t1", UserID: "u1"}).Error)

	repo := &TopicLikeRepository{DB: db}
	liked, likes, err := repo.Toggle(context.Background(), "t1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, likes)
}
