package ports

import (
	"context"
	"time"

	"github.com/krm/catalog-api/internal/core/domain"
)

// CredentialStore resolves a username to its principal. It returns
// domain.ErrUserNotFound when no such principal exists.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (domain.Principal, error)
}

// PasswordHasher is a one-way adaptive hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash in constant time.
	Verify(hash, plain string) bool
}

// Authenticator checks a username/secret pair. The error return is reserved
// for store faults; rejections are reported through the result.
type Authenticator interface {
	Authenticate(ctx context.Context, username, secret string) (domain.AuthenticationResult, error)
}

// TokenService issues and parses bearer tokens for the bearer policy.
type TokenService interface {
	Issue(p domain.Principal) (token string, expiresAt time.Time, err error)
	Parse(token string) (domain.Principal, error)
}

// AttemptThrottle tracks failed logins per submitted username.
type AttemptThrottle interface {
	// Blocked reports whether username is locked out and for how long.
	Blocked(ctx context.Context, username string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
