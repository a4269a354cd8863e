package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/pkg"
	"forum404/internal/repository/mysql"
)

// Sender delivers one outbox row downstream.
type Sender func(ctx context.Context, ob *model.EngagementOutbox) error

// OutboxRelayer drains pending engagement events to the sender on a ticker.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, batchSize int, interval time.Duration, log *zap.Logger) *OutboxRelayer {
	if batchSize <= 0 {
		batchSize = 200
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: batchSize,
		interval:  interval,
		sender:    sender,
		log:       log,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		r.log.Warn("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			r.log.Warn("outbox send failed",
				zap.Uint64("id", ob.ID),
				zap.String("event", ob.EventType),
				zap.Error(err))
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender routes outbox rows to the engagement topic keyed by actor, so
// one user's events stay ordered within a partition.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.EngagementOutbox) error {
		return producer.Send(ctx, ob.ActorID, []byte(ob.Payload))
	}
}

// LikeReconciler periodically walks topics and rewrites likes counters that
// drifted from the topic_likes relation.
type LikeReconciler struct {
	repo      *mysql.LikeReconcilerRepository
	batchSize int
	interval  time.Duration
	log       *zap.Logger
}

func NewLikeReconciler(db *gorm.DB, batchSize int, interval time.Duration, log *zap.Logger) *LikeReconciler {
	if batchSize <= 0 {
		batchSize = 500
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LikeReconciler{
		repo:      &mysql.LikeReconcilerRepository{DB: db},
		batchSize: batchSize,
		interval:  interval,
		log:       log,
	}
}

func (r *LikeReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.ReconcileOnce(ctx)
		}
	}
}

// ReconcileOnce sweeps the whole topics table in batches.
func (r *LikeReconciler) ReconcileOnce(ctx context.Context) {
	lastID := ""
	for {
		topics, nextID, err := r.repo.ListTopics(ctx, r.batchSize, lastID)
		if err != nil {
			r.log.Warn("reconcile list failed", zap.Error(err))
			return
		}
		if len(topics) == 0 {
			return
		}
		for _, t := range topics {
			real, err := r.repo.RealCount(ctx, t.ID)
			if err != nil {
				continue
			}
			if real != t.Likes {
				r.log.Info("fixing drifted like counter",
					zap.String("topic_id", t.ID),
					zap.Int64("stored", t.Likes),
					zap.Int64("real", real))
				_ = r.repo.FixCount(ctx, t.ID, real)
			}
		}
		lastID = nextID
	}
}
