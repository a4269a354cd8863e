package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/model"
	"forum404/internal/repository/mysql"
	"forum404/internal/service"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Get serves two shapes. With followers=true and userId it returns the
// follower count for that user. Otherwise it returns the profiles the given
// user follows, defaulting to the authenticated actor.
func (h *FollowHandler) Get(c *gin.Context) {
	if c.Query("followers") == "true" {
		userID := c.Query("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}
		count, err := h.svc.FollowerCount(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		userID = middleware.UserIDFromCtx(c)
	}
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	users, err := h.svc.ListFollowing(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) Create(c *gin.Context) {
	var req struct {
		FollowedUserID string `json:"followedUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "followedUserId is required"})
		return
	}

	actorID := middleware.UserIDFromCtx(c)
	if err := h.svc.Follow(c.Request.Context(), actorID, req.FollowedUserID); err != nil {
		switch {
		case errors.Is(err, mysql.ErrAlreadyFollowing), errors.Is(err, service.ErrFollowSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *FollowHandler) Delete(c *gin.Context) {
	var req struct {
		FollowedUserID string `json:"followedUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "followedUserId is required"})
		return
	}

	actorID := middleware.UserIDFromCtx(c)
	if err := h.svc.Unfollow(c.Request.Context(), actorID, req.FollowedUserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
