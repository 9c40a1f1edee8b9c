package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

var (
	_ ports.CredentialStore = (*StaticCredentialStore)(nil)
	_ ports.CredentialStore = (*UserCredentialStore)(nil)
)

// StaticCredentialStore holds exactly one principal, fixed at construction.
type StaticCredentialStore struct {
	principal domain.Principal
}

// StaticPrincipal describes the configured account. When PasswordHash is empty
// Password is hashed once at construction.
type StaticPrincipal struct {
	Username     string
	Password     string
	PasswordHash string
	Role         domain.Role
}

func NewStaticCredentialStore(cfg StaticPrincipal, hasher ports.PasswordHasher) (*StaticCredentialStore, error) {
	if cfg.Username == "" {
		return nil, errors.New("static principal: username is required")
	}
	if cfg.Role == "" {
		cfg.Role = domain.RoleUser
	}

	hash := cfg.PasswordHash
	switch {
	case hash != "":
		if !IsBcryptHash(hash) {
			return nil, errors.New("static principal: password hash is not a bcrypt hash")
		}
	case cfg.Password != "":
		var err error
		if hash, err = hasher.Hash(cfg.Password); err != nil {
			return nil, fmt.Errorf("static principal: %w", err)
		}
	default:
		return nil, errors.New("static principal: password or password hash is required")
	}

	return &StaticCredentialStore{principal: domain.Principal{
		Username:   cfg.Username,
		SecretHash: hash,
		Role:       cfg.Role,
	}}, nil
}

func (s *StaticCredentialStore) Lookup(_ context.Context, username string) (domain.Principal, error) {
	if username != s.principal.Username {
		return domain.Principal{}, domain.ErrUserNotFound
	}
	return s.principal, nil
}

// UserCredentialStore authenticates against persisted user records. Every
// record maps to a principal with the same fixed role.
type UserCredentialStore struct {
	users ports.UserRepository
	role  domain.Role
	log   zerolog.Logger
}

func NewUserCredentialStore(users ports.UserRepository, role domain.Role, log zerolog.Logger) *UserCredentialStore {
	if role == "" {
		role = domain.RoleUser
	}
	return &UserCredentialStore{users: users, role: role, log: log}
}

func (s *UserCredentialStore) Lookup(ctx context.Context, username string) (domain.Principal, error) {
	u, found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.Principal{}, err
	}
	if !found {
		s.log.Warn().Str("username", username).Msg("user does not exist")
		return domain.Principal{}, domain.ErrUserNotFound
	}
	if !IsBcryptHash(u.Password) {
		s.log.Warn().Int("user_id", u.ID).Msg("stored password is not hashed; login will be refused")
	}
	return domain.Principal{Username: u.Username, SecretHash: u.Password, Role: s.role}, nil
}
