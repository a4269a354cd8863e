package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum404/internal/pkg"
	"forum404/internal/repository/redis"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, redis.Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = redis.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromCtx(c)})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := setupAuthRouter(t)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authenticated")

	w = get(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pair, err := pkg.GeneratePair("u1")
	require.NoError(t, err)

	// A valid token that is not pinned in redis is a dead session.
	w = get(r, pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokens := &redis.TokenRepository{}
	require.NoError(t, tokens.AddUserToken("u1", pair.AccessToken))
	w = get(r, pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")

	// A later login elsewhere repins the slot and supersedes this token.
	require.NoError(t, tokens.AddUserToken("u1", "another-sessions-token"))
	w = get(r, pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "superseded")
}
