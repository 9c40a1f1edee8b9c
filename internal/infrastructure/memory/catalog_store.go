package memory

import (
	"slices"
	"sync"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

var _ ports.CatalogStore = (*CatalogStore)(nil)

// CatalogStore keeps products in insertion order behind a single mutex.
type CatalogStore struct {
	mu    sync.Mutex
	items []domain.Product
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

func (s *CatalogStore) All() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *CatalogStore) Find(id int) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *CatalogStore) Append(p domain.Product, unique bool) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID()
	}
	if unique && slices.ContainsFunc(s.items, func(have domain.Product) bool { return have.ID == p.ID }) {
		return domain.Product{}, false
	}
	s.items = append(s.items, p)
	return p, true
}

func (s *CatalogStore) Replace(p domain.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = p
			n++
		}
	}
	return n
}

func (s *CatalogStore) Remove(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(p domain.Product) bool { return p.ID == id })
	return before - len(s.items)
}

func (s *CatalogStore) SeedIfEmpty(products []domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 {
		return false
	}
	s.items = append(s.items, products...)
	return true
}

// nextID is one past the highest id, or 1 when empty. Callers hold mu.
func (s *CatalogStore) nextID() int {
	next := 1
	for _, p := range s.items {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func (s *CatalogStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
