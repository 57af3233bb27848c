package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/repository"
	"github.com/example/blog-platform/internal/session"
)

type AccountService struct {
	users    *repository.UserRepository
	sessions session.Store
}

func NewAccountService(database *db.Database, sessions session.Store) *AccountService {
	return &AccountService{
		users:    repository.NewUserRepository(database.Gorm),
		sessions: sessions,
	}
}

func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if _, err := s.users.ByUsername(ctx, username); err == nil {
		return nil, "", fmt.Errorf("%w: username is taken", ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
	}
	return s.sessions.Create(ctx, user.ID)
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// UserFromSession resolves the session cookie's token to a user, if any.
func (s *AccountService) UserFromSession(ctx context.Context, token string) (*models.User, error) {
	userID, ok, err := s.sessions.UserID(ctx, token)
	if err != nil || !ok {
		return nil, err
	}
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
