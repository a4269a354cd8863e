package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forum404/internal/middleware"
	"forum404/internal/model"
	"forum404/internal/service"
)

type UserHandler struct {
	svc       *service.UserService
	uploadSvc *service.UploadService
}

func NewUserHandler(svc *service.UserService, uploadSvc *service.UploadService) *UserHandler {
	return &UserHandler{svc: svc, uploadSvc: uploadSvc}
}

// Get serves both the single (?id=) and batch (?ids=a,b,c) profile lookups.
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Query("id")
	ids := c.Query("ids")

	if ids != "" {
		var idList []string
		for _, v := range strings.Split(ids, ",") {
			if v != "" {
				idList = append(idList, v)
			}
		}
		users, err := h.svc.GetProfiles(c.Request.Context(), idList)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if users == nil {
			users = []model.User{}
		}
		c.JSON(http.StatusOK, users)
		return
	}

	if id != "" {
		user, err := h.svc.GetProfile(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id or ids parameter"})
}

// Create mirrors an externally created identity into a profile row. The
// actor can only create their own profile.
func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	user := &model.User{
		ID:        middleware.UserIDFromCtx(c),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	}
	if err := h.svc.CreateProfile(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update patches profile fields. The id in the body must be the actor.
func (h *UserHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	id, _ := body["id"].(string)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	if id != middleware.UserIDFromCtx(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot update another user's profile"})
		return
	}
	delete(body, "id")

	user, err := h.svc.UpdateProfile(c.Request.Context(), id, body)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadProfilePicture accepts multipart file+userId, max 5MB, image/* only.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID := c.PostForm("userId")
	fileHeader, err := c.FormFile("file")
	if err != nil || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File and userId are required"})
		return
	}

	if userID != middleware.UserIDFromCtx(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File and userId are required"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxProfilePictureSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	user, err := h.uploadSvc.UploadProfilePicture(c.Request.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Profile picture uploaded successfully",
		"profile_picture": user.ProfilePicture,
		"profile":         user,
	})
}
