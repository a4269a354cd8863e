package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/model"
	"forum404/internal/service"
)

type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	actorID := middleware.UserIDFromCtx(c)
	subs, err := h.svc.ListByUser(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if subs == nil {
		subs = []model.Subscription{}
	}
	c.JSON(http.StatusOK, subs)
}

type CreateSubscriptionReq struct {
	TopicID    *string `json:"topic_id"`
	CategoryID *string `json:"category_id"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req CreateSubscriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	actorID := middleware.UserIDFromCtx(c)
	sub, err := h.svc.Create(c.Request.Context(), actorID, req.TopicID, req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sub)
}
