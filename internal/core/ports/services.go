package ports

import (
	"context"

	"github.com/krm/catalog-api/internal/core/domain"
)

// CatalogService is the product CRUD use-case surface.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int) (domain.Product, error)
	Add(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id int) (int, error)
}

// UserService lists account records and registers new ones.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (domain.User, error)
	Register(ctx context.Context, id int, username, password string) (domain.User, error)
}

// HomeService is a thin pass-through over the home repository.
type HomeService interface {
	List(ctx context.Context) ([]domain.Home, error)
	Get(ctx context.Context, id string) (domain.Home, error)
	Save(ctx context.Context, h domain.Home) (domain.Home, error)
}
