package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowCreateAndDuplicate(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedUser(t, db, "u2", "u2@example.com")
	repo := &FollowRepository{DB: db}
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "u2"))

	err := repo.Create(ctx, "u1", "u2")
	assert.True(t, errors.Is(err, ErrAlreadyFollowing))

	following, err := repo.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)

	count, err := repo.CountFollowers(ctx, "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFollowListProfiles(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedUser(t, db, "u2", "u2@example.com")
	seedUser(t, db, "u3", "u3@example.com")
	repo := &FollowRepository{DB: db}
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	require.NoError(t, repo.Create(ctx, "u1", "u3"))

	users, err := repo.ListFollowedProfiles(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, users, 2)
	ids := []string{users[0].ID, users[1].ID}
	assert.ElementsMatch(t, []string{"u2", "u3"}, ids)
}

func TestFollowDeleteIdempotent(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	seedUser(t, db, "u2", "u2@example.com")
	repo := &FollowRepository{DB: db}
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	require.NoError(t, repo.Delete(ctx, "u1", "u2"))
	// Deleting again is a no-op, not an error.
	require.NoError(t, repo.Delete(ctx, "u1", "u2"))

	following, err := repo.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)
}
