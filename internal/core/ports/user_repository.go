package ports

import (
	"context"

	"github.com/krm/catalog-api/internal/core/domain"
)

// UserRepository persists account records.
type UserRepository interface {
	Repository[domain.User, int]
	FindByUsername(ctx context.Context, username string) (user domain.User, found bool, err error)
	// Create inserts a new account and never overwrites. A taken id or
	// username fails with domain.ErrUserExists.
	Create(ctx context.Context, user domain.User) (domain.User, error)
}
