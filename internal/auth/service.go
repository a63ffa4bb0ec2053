package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
)

// Service owns registration, login and profile lookup. It is the only
// component that sees password hashes.
type Service struct {
	users  storage.UserStore
	tokens *TokenManager
}

func NewService(users storage.UserStore, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Tokens exposes the manager used to verify bearer tokens.
func (s *Service) Tokens() *TokenManager { return s.tokens }

// Register hashes the password, stores the user and issues a token.
// A taken email yields storage.ErrEmailExists.
func (s *Service) Register(ctx context.Context, email, password, name string) (models.User, string, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.NewUser{
		Email:        strings.TrimSpace(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and issues a token. No token is produced
// on failure.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, string, error) {
	rec, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}
	if !CheckPassword(rec.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(rec.User)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %w", err)
	}
	return rec.User, token, nil
}

// Profile returns the user named by the token's id claim.
func (s *Service) Profile(ctx context.Context, id string) (models.User, error) {
	return s.users.FindByID(ctx, id)
}
