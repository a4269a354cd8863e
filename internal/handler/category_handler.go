package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List answers the bare array when limit is absent (legacy shape) and the
// pagination envelope otherwise.
func (h *CategoryHandler) List(c *gin.Context) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		categories, err := h.svc.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, categories)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(limitStr)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	categories, total, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      categories,
		"pagination": newPagination(page, limit, total),
	})
}

type CreateCategoryReq struct {
	Name        string `json:"name" binding:"required"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	ownerID := middleware.UserIDFromCtx(c)
	category, err := h.svc.Create(c.Request.Context(), ownerID, req.Name, req.Icon, req.Color, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}
