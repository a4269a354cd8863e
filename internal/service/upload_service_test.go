package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	keys []string
}

func (m *memStore) Upload(key, contentType string, data []byte) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestUploadProfilePicture(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	store := &memStore{}
	svc := NewUploadService(db, store)
	ctx := context.Background()

	user, err := svc.UploadProfilePicture(ctx, "u1", "avatar.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], "u1/"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".png"))
	assert.Equal(t, "https://cdn.example.com/"+store.keys[0], user.ProfilePicture)
}

func TestUploadProfilePictureValidation(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "u1", "u1@example.com")
	svc := NewUploadService(db, &memStore{})
	ctx := context.Background()

	_, err := svc.UploadProfilePicture(ctx, "u1", "big.png", "image/png",
		bytes.Repeat([]byte("a"), MaxProfilePictureSize+1))
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	_, err = svc.UploadProfilePicture(ctx, "u1", "doc.pdf", "application/pdf", []byte("x"))
	assert.True(t, errors.Is(err, ErrNotAnImage))
}
