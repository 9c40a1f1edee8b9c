package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

// UserService lists persisted accounts and registers new ones.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int) (domain.User, error) {
	u, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	if !found {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}
	return u, nil
}

// Register hashes password and stores a new account. Both the id and the
// username must be unused. The lookups only skip hashing for obvious
// duplicates; Create is what decides.
func (s *UserService) Register(ctx context.Context, id int, username, password string) (domain.User, error) {
	if id <= 0 || username == "" || password == "" {
		return domain.User{}, domain.ErrValidation
	}

	if _, found, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	} else if found {
		return domain.User{}, domain.ErrUserExists
	}
	if _, found, err := s.repo.FindByUsername(ctx, username); err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	} else if found {
		return domain.User{}, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	}

	saved, err := s.repo.Create(ctx, domain.User{ID: id, Username: username, Password: hash})
	if errors.Is(err, domain.ErrUserExists) {
		return domain.User{}, err
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	}
	s.logger.Info().Int("id", saved.ID).Str("username", saved.Username).Msg("user registered")
	return saved, nil
}
