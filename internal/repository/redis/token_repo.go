package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	userTokenPrefix = "login:user:token"
	UserTokenExpire = 30 * time.Minute
)

// TokenRepository pins the active access token per user so a second login
// invalidates the first session.
type TokenRepository struct{}

func tokenKey(userID string) string {
	return fmt.Sprintf("%s:%s", userTokenPrefix, userID)
}

func (r *TokenRepository) AddUserToken(userID, token string) error {
	if err := Client.Set(context.Background(), tokenKey(userID), token, UserTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) GetUserToken(userID string) (string, error) {
	token, err := Client.Get(context.Background(), tokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *TokenRepository) ExtendUserToken(userID string) error {
	if _, err := Client.Expire(context.Background(), tokenKey(userID), UserTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) DeleteUserToken(userID string) error {
	if err := Client.Del(context.Background(), tokenKey(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
