package ports

import "context"

// Keyed is implemented by entities that carry their own primary key.
type Keyed[K comparable] interface {
	Key() K
}

// Repository is the generic create/read/update persistence contract.
//
// FindByID reports absence with found=false and a nil error. Save upserts by
// the entity's key and returns the stored value.
type Repository[T Keyed[K], K comparable] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id K) (entity T, found bool, err error)
	Save(ctx context.Context, entity T) (T, error)
}
