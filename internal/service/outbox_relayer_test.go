package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forum404/internal/model"
)

func TestOutboxDrainMarksRows(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedUser(t, db, "u2", "u2@example.com")

	// A follow writes one pending outbox row.
	require.NoError(t, NewFollowService(db).Follow(context.Background(), "u1", "u2"))

	var sent []string
	sender := func(ctx context.Context, ob *model.EngagementOutbox) error {
		sent = append(sent, ob.EventType)
		return nil
	}
	relayer := NewOutboxRelayer(db, sender, 10, time.Second, zap.NewNop())
	relayer.drainOnce(context.Background())

	assert.Equal(t, []string{"follow"}, sent)

	var pending int64
	require.NoError(t, db.Model(&model.EngagementOutbox{}).Where("status = 0").Count(&pending).Error)
	assert.EqualValues(t, 0, pending)

	// Nothing left to send on the next tick.
	relayer.drainOnce(context.Background())
	assert.Len(t, sent, 1)
}

func TestOutboxSendFailureMarksFailed(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedUser(t, db, "u2", "u2@example.com")
	require.NoError(t, NewFollowService(db).Follow(context.Background(), "u1", "u2"))

	sender := func(ctx context.Context, ob *model.EngagementOutbox) error {
		return errors.New("broker down")
	}
	relayer := NewOutboxRelayer(db, sender, 10, time.Second, zap.NewNop())
	relayer.drainOnce(context.Background())

	var row model.EngagementOutbox
	require.NoError(t, db.First(&row).Error)
	assert.EqualValues(t, 2, row.Status)
	assert.EqualValues(t, 1, row.Retry)
}

func TestLikeReconcilerFixesDrift(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedTopic(t, db, "t1", "u1")
	seedTopic(t, db, "t2", "u1")

	// t1 counter drifted high, t2 is correct.
	require.NoError(t, db.Create(&model.TopicLike{ID: "l1", TopicID: "t2", UserID: "u1"}).Error)
	require.NoError(t, db.Model(&model.Topic{}).Where("id = ?", "t1").UpdateColumn("likes", 9).Error)
	require.NoError(t, db.Model(&model.Topic{}).Where("id = ?", "t2").UpdateColumn("likes", 1).Error)

	rec := NewLikeReconciler(db, 1, time.Minute, zap.NewNop())
	rec.ReconcileOnce(context.Background())

	var t1, t2 model.Topic
	require.NoError(t, db.First(&t1, "id = ?", "t1").Error)
	require.NoError(t, db.First(&t2, "id = ?", "t2").Error)
	assert.EqualValues(t, 0, t1.Likes)
	assert.EqualValues(t, 1, t2.Likes)
}
