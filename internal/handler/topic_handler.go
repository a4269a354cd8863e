package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/repository/mysql"
	"forum404/internal/service"
)

type TopicHandler struct {
	svc *service.TopicService
}

func NewTopicHandler(svc *service.TopicService) *TopicHandler {
	return &TopicHandler{svc: svc}
}

func (h *TopicHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	f := mysql.TopicFilter{
		CategoryID: c.Query("categoryId"),
		AuthorID:   c.Query("authorId"),
	}

	topics, total, err := h.svc.List(c.Request.Context(), f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      topics,
		"pagination": newPagination(page, limit, total),
	})
}

type CreateTopicReq struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id" binding:"required"`
	IsHot      bool   `json:"is_hot"`
	IsQuestion bool   `json:"is_question"`
}

func (h *TopicHandler) Create(c *gin.Context) {
	var req CreateTopicReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	authorID := middleware.UserIDFromCtx(c)
	topic, err := h.svc.Create(c.Request.Context(), authorID, req.CategoryID, req.Title, req.Content, req.IsHot, req.IsQuestion)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, topic)
}

type ToggleLikeReq struct {
	Action  string `json:"action" binding:"required"`
	TopicID string `json:"topicId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
}

// Patch implements the toggle_like action. The acting user must match the
// authenticated session.
func (h *TopicHandler) Patch(c *gin.Context) {
	var req ToggleLikeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Action != "toggle_like" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.UserID != middleware.UserIDFromCtx(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act as another user"})
		return
	}

	liked, likes, err := h.svc.ToggleLike(c.Request.Context(), req.TopicID, req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likesCount": likes})
}

func (h *TopicHandler) Delete(c *gin.Context) {
	var req struct {
		TopicID string `json:"topicId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	actorID := middleware.UserIDFromCtx(c)
	if err := h.svc.Delete(c.Request.Context(), actorID, req.TopicID); err != nil {
		if errors.Is(err, service.ErrNotTopicAuthor) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
