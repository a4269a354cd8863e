package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/model"
	"forum404/internal/service"
)

type SavedTopicHandler struct {
	svc *service.SavedTopicService
}

func NewSavedTopicHandler(svc *service.SavedTopicService) *SavedTopicHandler {
	return &SavedTopicHandler{svc: svc}
}

// List returns the topics a user has saved, most recently saved first.
func (h *SavedTopicHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	topics, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	c.JSON(http.StatusOK, topics)
}

type ToggleSaveReq struct {
	Action  string `json:"action" binding:"required"`
	TopicID string `json:"topicId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
}

func (h *SavedTopicHandler) Patch(c *gin.Context) {
	var req ToggleSaveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Action != "toggle_save" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.UserID != middleware.UserIDFromCtx(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act as another user"})
		return
	}

	saved, err := h.svc.Toggle(c.Request.Context(), req.TopicID, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle save"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}
