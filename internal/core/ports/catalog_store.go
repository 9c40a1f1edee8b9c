package ports

import "github.com/krm/catalog-api/internal/core/domain"

// CatalogStore is the ordered in-process product collection. Every method is
// atomic with respect to the others.
type CatalogStore interface {
	// All returns a copy of the collection in insertion order.
	All() []domain.Product
	// Find returns the first product with id.
	Find(id int) (domain.Product, bool)
	// Append adds p at the end and returns what was stored. A zero id is
	// replaced by one past the highest id. When unique is set and the id is
	// already present the store is left untouched and false is returned.
	Append(p domain.Product, unique bool) (domain.Product, bool)
	// Replace overwrites every product with p.ID and returns how many matched.
	Replace(p domain.Product) int
	// Remove deletes every product with id and returns how many were removed.
	Remove(id int) int
	// SeedIfEmpty appends products only when the collection is empty.
	SeedIfEmpty(products []domain.Product) bool
	Len() int
}
