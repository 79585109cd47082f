// Package auth authenticates users: password hashing, signed session cookies
// and the gin middleware that resolves the acting user.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
)

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Authenticate returns the user whose credentials match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	taken, err := s.store.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register %q: %w", username, err)
	}
	return user, nil
}

// UserByID loads the user a session refers to.
func (s *Service) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.store.UserByID(ctx, id)
}
