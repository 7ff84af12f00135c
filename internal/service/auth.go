package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/grocerease/grocery-shop/internal/hash"
	"github.com/grocerease/grocery-shop/internal/logging"
	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/repo"
	"github.com/grocerease/grocery-shop/internal/tokens"
)

const accessTokenTTL = 15 * time.Minute

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
	IsAdmin     bool
}

func (s *AuthService) Register(ctx context.Context, username, password, name string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	if username == "" || password == "" {
		return fmt.Errorf("username and password required: %w", ErrValidation)
	}

	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return fmt.Errorf("username already exists: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Name:         name,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return err
	}
	l.Info("user_registered", "user_id", user.ID)
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthenticated)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthenticated)
	}

	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{
		AccessToken: accessToken,
		AccessExp:   accessExp,
		IsAdmin:     user.Role == "admin",
	}, nil
}

type ProfileUpdate struct {
	Username        string
	CurrentPassword string
	NewPassword     string
	Name            string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.update_profile", "user_id", userID)

	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if upd.Username == "" || upd.CurrentPassword == "" {
		return nil, fmt.Errorf("username and current password required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, upd.CurrentPassword) {
		return nil, fmt.Errorf("incorrect current password: %w", ErrForbidden)
	}

	if upd.Username != user.Username {
		if _, err := s.Repo.GetUserByUsername(ctx, upd.Username); err == nil {
			return nil, fmt.Errorf("username already exists: %w", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = upd.Username
	}

	if upd.NewPassword != "" {
		if upd.NewPassword == upd.CurrentPassword {
			return nil, fmt.Errorf("new password cannot equal the current one: %w", ErrValidation)
		}
		pwHash, err := hash.HashPassword(upd.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}

	user.Name = upd.Name
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	l.Info("profile_updated")
	return user, nil
}
