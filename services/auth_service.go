package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fredneedsausername/FreDiet/cache"
	"github.com/fredneedsausername/FreDiet/models"
	"github.com/fredneedsausername/FreDiet/utils"

	"gorm.io/gorm"
)

// Bounds carried over from the original schema constraints.
const (
	maxUsernameLen = 12
	maxPasswordLen = 50
)

type AuthService struct {
	db         *gorm.DB
	sessionTTL time.Duration
	cache      *cache.SummaryCache
}

// NewAuthService creates an AuthService. If c is nil, caching is disabled.
func NewAuthService(db *gorm.DB, sessionTTL time.Duration, c *cache.SummaryCache) *AuthService {
	return &AuthService{db: db, sessionTTL: sessionTTL, cache: c}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	// bounds count characters, as the original schema's LENGTH() did
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, ErrValidation
	}
	if password == "" || utf8.RuneCountInString(password) > maxPasswordLen {
		return nil, ErrValidation
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, Password: hashed}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// two registrations racing past the existence check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// CreateSession issues an opaque token bound to the user, valid for the
// configured TTL.
func (s *AuthService) CreateSession(ctx context.Context, userID uint) (string, error) {
	token, err := utils.GenerateRandomToken()
	if err != nil {
		return "", err
	}
	sess := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a session token to a user ID. Expired sessions are
// purged on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}
	var sess models.Session
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&sess).Error
		return 0, ErrUnauthenticated
	}
	return sess.UserID, nil
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ChangePassword swaps the stored hash after verifying the old password, then
// revokes every session so stolen tokens die with the old credential.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if newPassword == "" || utf8.RuneCountInString(newPassword) > maxPasswordLen {
		return ErrValidation
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// DeleteAccount hard-deletes the user and cascades to owned records and
// sessions in one transaction.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.MealRecord{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
	return nil
}
