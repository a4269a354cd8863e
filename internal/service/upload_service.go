package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/pkg"
	"forum404/internal/repository/mysql"
)

const MaxProfilePictureSize = 5 * 1024 * 1024

var (
	ErrFileTooLarge = errors.New("File size must be less than 5MB")
	ErrNotAnImage   = errors.New("File must be an image")
)

type UploadService struct {
	store    pkg.FileStore
	userRepo *mysql.UserRepository
}

func NewUploadService(db *gorm.DB, store pkg.FileStore) *UploadService {
	return &UploadService{
		store:    store,
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// UploadProfilePicture validates the blob, stores it under
// {userId}/{timestamp}.{ext} and writes the public URL to the profile.
func (s *UploadService) UploadProfilePicture(ctx context.Context, userID, filename, contentType string, data []byte) (*model.User, error) {
	if len(data) > MaxProfilePictureSize {
		return nil, ErrFileTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	ext := "jpg"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = filename[i+1:]
	}
	key := fmt.Sprintf("%s/%d.%s", userID, time.Now().UnixNano(), ext)

	url, err := s.store.Upload(key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return s.userRepo.UpdateProfilePicture(ctx, userID, url)
}
