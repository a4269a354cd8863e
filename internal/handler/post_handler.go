package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/model"
	"forum404/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// List returns posts filtered by topicId and/or authorId, oldest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context(), c.Query("topicId"), c.Query("authorId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

type CreatePostReq struct {
	TopicID string `json:"topic_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	authorID := middleware.UserIDFromCtx(c)
	post, err := h.svc.Create(c.Request.Context(), authorID, req.TopicID, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	var req struct {
		PostID string `json:"postId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	actorID := middleware.UserIDFromCtx(c)
	if err := h.svc.Delete(c.Request.Context(), actorID, req.PostID); err != nil {
		if errors.Is(err, service.ErrNotPostAuthor) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
