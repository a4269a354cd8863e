package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	likeCntTTL       = 24 * time.Hour
	likeCntKeyPrefix = "like:cnt:topic"
)

// LikeCountCache is a read-side cache of topics.likes. The database counter
// is authoritative (it moves inside the toggle transaction); writers only
// delete the key here and the next reader refills it.
type LikeCountCache struct{}

func likeCntKey(topicID string) string {
	return fmt.Sprintf("%s:%s", likeCntKeyPrefix, topicID)
}

func (r *LikeCountCache) Get(ctx context.Context, topicID string) (int64, bool, error) {
	val, err := Client.Get(ctx, likeCntKey(topicID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (r *LikeCountCache) Set(ctx context.Context, topicID string, count int64) error {
	return Client.Set(ctx, likeCntKey(topicID), count, likeCntTTL).Err()
}

func (r *LikeCountCache) Delete(ctx context.Context, topicID string) error {
	return Client.Del(ctx, likeCntKey(topicID)).Err()
}
