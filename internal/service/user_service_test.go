package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum404/internal/pkg"
)

func TestUpdateProfileWhitelist(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db, pkg.SMTPConfig{})
	ctx := context.Background()
	seedUser(t, db, "u1", "u1@example.com")

	user, err := svc.UpdateProfile(ctx, "u1", map[string]any{
		"bio":   "hello",
		"email": "hijack@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", user.Bio)
	// Non-whitelisted fields are silently dropped.
	assert.Equal(t, "u1@example.com", user.Email)

	_, err = svc.UpdateProfile(ctx, "u1", map[string]any{"email": "x@example.com"})
	assert.Error(t, err)

	_, err = svc.UpdateProfile(ctx, "missing", map[string]any{"bio": "x"})
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestUpdateProfileIdempotentAdvancesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db, pkg.SMTPConfig{})
	ctx := context.Background()
	seedUser(t, db, "u1", "u1@example.com")

	first, err := svc.UpdateProfile(ctx, "u1", map[string]any{"bio": "same"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := svc.UpdateProfile(ctx, "u1", map[string]any{"bio": "same"})
	require.NoError(t, err)
	assert.Equal(t, first.Bio, second.Bio)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestSignupAndLogin(t *testing.T) {
	db := setupDB(t)
	setupRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Ada", "Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	pair, err := svc.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidPassword))

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestForgetAndResetPassword(t *testing.T) {
	db := setupDB(t)
	setupRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ada", "Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)

	var sentBody string
	svc.sendMail = func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error {
		sentBody = htmlBody
		return nil
	}

	require.NoError(t, svc.ForgetPassword(ctx, "ada@example.com"))
	require.NotEmpty(t, sentBody)

	// Wrong code does not reset.
	err = svc.ResetPassword(ctx, "ada@example.com", "000000", "newpass1")
	assert.True(t, errors.Is(err, ErrBadResetCode))
}

func TestForgetPasswordMailFailureRollsBack(t *testing.T) {
	db := setupDB(t)
	setupRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ada", "Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)

	svc.sendMail = func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error {
		return errors.New("smtp down")
	}
	assert.Error(t, svc.ForgetPassword(ctx, "ada@example.com"))
}
