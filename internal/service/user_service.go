package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"forum404/internal/model"
	"forum404/internal/pkg"
	"forum404/internal/repository/mysql"
	"forum404/internal/repository/redis"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrBadResetCode    = errors.New("verification failed")
)

// profileColumns lists the fields a PATCH /users call may touch.
var profileColumns = map[string]bool{
	"first_name":      true,
	"last_name":       true,
	"phone":           true,
	"bio":             true,
	"profile_picture": true,
}

type UserService struct {
	repo     *mysql.UserRepository
	tokens   *redis.TokenRepository
	codes    *redis.ResetCodeRepository
	smtp     pkg.SMTPConfig
	sendMail func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error
}

func NewUserService(db *gorm.DB, smtp pkg.SMTPConfig) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		tokens:   &redis.TokenRepository{},
		codes:    &redis.ResetCodeRepository{},
		smtp:     smtp,
		sendMail: pkg.SendEmail,
	}
}

// Signup creates the account row mirroring the auth identity.
func (s *UserService) Signup(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	// Pin the access token so a later login elsewhere evicts this session.
	if err := s.tokens.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID string) error {
	return s.tokens.DeleteUserToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetProfiles(ctx context.Context, ids []string) ([]model.User, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// CreateProfile inserts a bare profile row for an externally created
// identity (the signup mirror path).
func (s *UserService) CreateProfile(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return s.repo.Create(ctx, user)
}

// UpdateProfile applies whitelisted profile fields. updated_at advances on
// every call even when the values are unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, id string, updates map[string]any) (*model.User, error) {
	filtered := make(map[string]any, len(updates))
	for k, v := range updates {
		if profileColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, errors.New("no updatable fields")
	}
	user, err := s.repo.UpdateProfile(ctx, id, filtered)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return errors.New("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	// Drop the pinned session; the client must log in again.
	return s.Logout(userID)
}

// ForgetPassword emails a reset code. The code is written pending first and
// only confirmed once the mail went out.
func (s *UserService) ForgetPassword(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return ErrUserNotFound
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.codes.SetPending(email, code); err != nil {
		return err
	}

	html := pkg.ResetCodeHTML(code, redis.DefaultResetCodeTTL)
	if err := s.sendMail(s.smtp, email, "Password reset code", html); err != nil {
		return err
	}

	if err := s.codes.Confirm(email); err != nil {
		_ = s.codes.DeletePending(email)
		return err
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	stored, err := s.codes.GetConfirmed(email)
	if err != nil || stored != code {
		return ErrBadResetCode
	}
	if err := s.codes.DeleteConfirmed(email); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, string(hash))
}
