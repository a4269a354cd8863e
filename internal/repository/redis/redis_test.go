package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = Close() })
}

func TestTokenPinning(t *testing.T) {
	setupRedis(t)
	repo := &TokenRepository{}

	_, err := repo.GetUserToken("u1")
	assert.True(t, errors.Is(err, ErrTokenNotFound))

	require.NoError(t, repo.AddUserToken("u1", "tok-a"))
	tok, err := repo.GetUserToken("u1")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", tok)

	// A second login overwrites the pin.
	require.NoError(t, repo.AddUserToken("u1", "tok-b"))
	tok, err = repo.GetUserToken("u1")
	require.NoError(t, err)
	assert.Equal(t, "tok-b", tok)

	require.NoError(t, repo.ExtendUserToken("u1"))
	require.NoError(t, repo.DeleteUserToken("u1"))
	_, err = repo.GetUserToken("u1")
	assert.True(t, errors.Is(err, ErrTokenNotFound))
}

func TestResetCodeTwoPhase(t *testing.T) {
	setupRedis(t)
	repo := &ResetCodeRepository{}
	email := "a@example.com"

	require.NoError(t, repo.SetPending(email, "123456"))

	// Pending codes never validate.
	_, err := repo.GetConfirmed(email)
	assert.True(t, errors.Is(err, ErrCodeNotFound))

	require.NoError(t, repo.Confirm(email))
	code, err := repo.GetConfirmed(email)
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	// Confirm moved the key, a second confirm has nothing to promote.
	assert.True(t, errors.Is(repo.Confirm(email), ErrCodeConfirmFailed))

	require.NoError(t, repo.DeleteConfirmed(email))
	_, err = repo.GetConfirmed(email)
	assert.True(t, errors.Is(err, ErrCodeNotFound))
}

func TestLikeCountCache(t *testing.T) {
	setupRedis(t)
	cache := &LikeCountCache{}
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "t1", 7))
	v, ok, err := cache.Get(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 7, v)

	require.NoError(t, cache.Delete(ctx, "t1"))
	_, ok, err = cache.Get(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, ok)
}
