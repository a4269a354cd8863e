package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheServesFreshEntries(t *testing.T) {
	qc := NewQueryCache(time.Minute)
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return "value", nil
	}

	v, err := qc.Get(ctx, QueryKey("topics", "page=1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)

	v, err = qc.Get(ctx, QueryKey("topics", "page=1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestQueryCacheStaleRefetch(t *testing.T) {
	qc := NewQueryCache(time.Millisecond)
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, err := qc.Get(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	time.Sleep(5 * time.Millisecond)

	v, err = qc.Get(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestQueryCacheFetchErrorLeavesEntry(t *testing.T) {
	qc := NewQueryCache(time.Millisecond)
	ctx := context.Background()

	qc.Set("k", "old")
	time.Sleep(5 * time.Millisecond)

	_, err := qc.Get(ctx, "k", func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)

	// The stale entry is still there for a later optimistic read.
	v, ok := qc.Peek("k")
	require.True(t, ok)
	assert.Equal(t, "old", v)
}

func TestQueryCacheInvalidate(t *testing.T) {
	qc := NewQueryCache(time.Minute)

	qc.Set(QueryKey("topics", "page=1"), 1)
	qc.Set(QueryKey("topics", "page=2"), 2)
	qc.Set(QueryKey("saved-topics", "u1"), 3)

	qc.Invalidate(QueryKey("topics", "page=1"))
	_, ok := qc.Peek(QueryKey("topics", "page=1"))
	assert.False(t, ok)
	_, ok = qc.Peek(QueryKey("topics", "page=2"))
	assert.True(t, ok)

	qc.InvalidatePrefix("topics")
	_, ok = qc.Peek(QueryKey("topics", "page=2"))
	assert.False(t, ok)
	_, ok = qc.Peek(QueryKey("saved-topics", "u1"))
	assert.True(t, ok)
}
