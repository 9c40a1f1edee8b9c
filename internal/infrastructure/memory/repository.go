package memory

import (
	"context"
	"sync"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

// Repository is a process-local ports.Repository. FindAll returns entities in
// the order their keys were first saved.
type Repository[T ports.Keyed[K], K comparable] struct {
	mu    sync.RWMutex
	order []K
	items map[K]T
}

func NewRepository[T ports.Keyed[K], K comparable]() *Repository[T, K] {
	return &Repository[T, K]{items: make(map[K]T)}
}

func (r *Repository[T, K]) FindAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.items[k])
	}
	return out, nil
}

func (r *Repository[T, K]) FindByID(_ context.Context, id K) (T, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	return e, ok, nil
}

func (r *Repository[T, K]) Save(_ context.Context, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := entity.Key()
	if _, exists := r.items[k]; !exists {
		r.order = append(r.order, k)
	}
	r.items[k] = entity
	return entity, nil
}

// UserRepository adds username lookup on top of the generic repository.
type UserRepository struct {
	*Repository[domain.User, int]
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{Repository: NewRepository[domain.User, int]()}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.order {
		if u := r.items[k]; u.Username == username {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (r *UserRepository) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.items[u.ID]; taken {
		return domain.User{}, domain.ErrUserExists
	}
	for _, existing := range r.items {
		if existing.Username == u.Username {
			return domain.User{}, domain.ErrUserExists
		}
	}
	r.order = append(r.order, u.ID)
	r.items[u.ID] = u
	return u, nil
}

// HomeRepository is the in-memory home store.
type HomeRepository struct {
	*Repository[domain.Home, string]
}

var _ ports.HomeRepository = (*HomeRepository)(nil)

func NewHomeRepository() *HomeRepository {
	return &HomeRepository{Repository: NewRepository[domain.Home, string]()}
}
