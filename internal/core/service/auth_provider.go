package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

// AuthProvider verifies a username/secret pair against a credential store.
type AuthProvider struct {
	store  ports.CredentialStore
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAuthProvider(store ports.CredentialStore, hasher ports.PasswordHasher, log zerolog.Logger) *AuthProvider {
	return &AuthProvider{store: store, hasher: hasher, log: log}
}

// Authenticate never returns an error for bad input: unknown users and wrong
// secrets come back as a rejected result. Only store faults are returned as err.
func (a *AuthProvider) Authenticate(ctx context.Context, username, secret string) (domain.AuthenticationResult, error) {
	if username == "" {
		return domain.Rejected(domain.ErrUserNotFound), nil
	}

	principal, err := a.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			a.log.Debug().Str("username", username).Msg("authentication rejected: no such user")
			return domain.Rejected(domain.ErrUserNotFound), nil
		}
		return domain.AuthenticationResult{}, fmt.Errorf("credential lookup: %w", err)
	}

	if secret == "" || !a.hasher.Verify(principal.SecretHash, secret) {
		a.log.Debug().Str("username", username).Msg("authentication rejected: bad credentials")
		return domain.Rejected(domain.ErrBadCredentials), nil
	}

	return domain.Authenticated(principal), nil
}
