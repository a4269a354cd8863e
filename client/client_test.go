package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRequiresToken(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.ToggleLike(context.Background(), "t1", "u1")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	// The guard fires before any request goes out.
	assert.EqualValues(t, 0, atomic.LoadInt32(&hits))

	_, err = c.ToggleSave(context.Background(), "t1", "u1")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.True(t, errors.Is(c.Follow(context.Background(), "u2"), ErrNotAuthenticated))
	assert.EqualValues(t, 0, atomic.LoadInt32(&hits))
}

func TestToggleLikeRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/topic", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "toggle_like", body["action"])
		require.Equal(t, "t1", body["topicId"])

		_ = json.NewEncoder(w).Encode(map[string]any{"liked": true, "likesCount": 3})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	liked, likes, err := c.ToggleLike(context.Background(), "t1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 3, likes)
}

func TestAPIErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Already following"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	err := c.Follow(context.Background(), "u2")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Already following", apiErr.Message)
}

func TestGetUsersBatchParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "a,b", r.URL.Query().Get("ids"))
		_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "a"}, {"id": "b"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	users, err := c.GetUsers(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a", users[0].ID)

	// Empty input never issues a request.
	users, err = c.GetUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"access_token": "tok-123", "refresh_token": "ref-456",
			})
		case "/api/following":
			require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	pair, err := c.Login(context.Background(), "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", pair.AccessToken)

	require.NoError(t, c.Follow(context.Background(), "u2"))
}

func TestEngagementInvalidatesQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"liked": true, "likesCount": 1, "saved": true})
	}))
	defer srv.Close()

	qc := NewQueryCache(0)
	e := &Engagement{Client: New(srv.URL, WithToken("tok")), Queries: qc}

	qc.Set(QueryKey(opTopics, "page=1"), "stale")
	qc.Set(QueryKey(opSavedTopics, "u1"), "stale")

	_, _, err := e.ToggleLike(context.Background(), "t1", "u1")
	require.NoError(t, err)
	_, ok := qc.Peek(QueryKey(opTopics, "page=1"))
	assert.False(t, ok)
	liked, ok := qc.Peek(QueryKey(opLikeState, "t1", "u1"))
	require.True(t, ok)
	assert.Equal(t, true, liked)

	_, err = e.ToggleSave(context.Background(), "t1", "u1")
	require.NoError(t, err)
	_, ok = qc.Peek(QueryKey(opSavedTopics, "u1"))
	assert.False(t, ok)
}
