package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum404/internal/service"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	typ := c.Query("type")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	res, err := h.svc.Search(c.Request.Context(), query, typ, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) || errors.Is(err, service.ErrInvalidSearchType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var results any
	switch typ {
	case "topics":
		results = res.Topics
	case "users":
		results = res.Users
	case "categories":
		results = res.Categories
	}
	c.JSON(http.StatusOK, gin.H{
		"results":    results,
		"pagination": newPagination(page, limit, res.Total),
	})
}
