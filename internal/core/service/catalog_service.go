package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

// SeedPolicy controls when the sample products are loaded into the catalog.
type SeedPolicy string

const (
	// SeedAtStartup seeds once, when the service is constructed.
	SeedAtStartup SeedPolicy = "startup"
	// SeedOnEmpty re-seeds whenever List finds the catalog empty.
	SeedOnEmpty SeedPolicy = "on-empty"
	// SeedNever leaves the catalog empty.
	SeedNever SeedPolicy = "none"
)

// ParseSeedPolicy validates a configured policy name.
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch p := SeedPolicy(s); p {
	case SeedAtStartup, SeedOnEmpty, SeedNever:
		return p, nil
	}
	return "", fmt.Errorf("unknown seed policy %q", s)
}

// CatalogOptions tunes the catalog's legacy behaviours.
type CatalogOptions struct {
	Seed SeedPolicy
	// Strict rejects duplicate ids on Add with ErrProductConflict and update
	// misses with ErrProductNotFound. When false both are silently accepted.
	Strict bool
}

type CatalogService struct {
	store  ports.CatalogStore
	opts   CatalogOptions
	logger zerolog.Logger
}

func NewCatalogService(store ports.CatalogStore, opts CatalogOptions, logger zerolog.Logger) *CatalogService {
	if opts.Seed == "" {
		opts.Seed = SeedAtStartup
	}
	s := &CatalogService{store: store, opts: opts, logger: logger}
	if opts.Seed == SeedAtStartup && store.SeedIfEmpty(domain.SampleProducts()) {
		logger.Info().Int("count", store.Len()).Msg("catalog seeded")
	}
	return s
}

// List returns every product in insertion order.
func (s *CatalogService) List(_ context.Context) ([]domain.Product, error) {
	if s.opts.Seed == SeedOnEmpty && s.store.SeedIfEmpty(domain.SampleProducts()) {
		s.logger.Info().Msg("catalog was empty, re-seeded")
	}
	return s.store.All(), nil
}

// Get returns the first product with id.
func (s *CatalogService) Get(_ context.Context, id int) (domain.Product, error) {
	p, ok := s.store.Find(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// Add appends p. A zero id is replaced by the next free sequence value.
func (s *CatalogService) Add(_ context.Context, p domain.Product) (domain.Product, error) {
	stored, ok := s.store.Append(p, s.opts.Strict)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", p.ID, domain.ErrProductConflict)
	}
	p = stored
	s.logger.Info().Int("id", p.ID).Str("name", p.Name).Msg("product added")
	return p, nil
}

// Update replaces every product sharing p.ID with p. Fields are not merged.
func (s *CatalogService) Update(_ context.Context, p domain.Product) (domain.Product, error) {
	n := s.store.Replace(p)
	if n == 0 {
		if s.opts.Strict {
			return domain.Product{}, fmt.Errorf("product %d: %w", p.ID, domain.ErrProductNotFound)
		}
		s.logger.Debug().Int("id", p.ID).Msg("update matched no product")
		return p, nil
	}
	s.logger.Info().Int("id", p.ID).Int("replaced", n).Msg("product updated")
	return p, nil
}

// Delete removes every product with id. Removing nothing is not an error.
func (s *CatalogService) Delete(_ context.Context, id int) (int, error) {
	n := s.store.Remove(id)
	if n > 0 {
		s.logger.Info().Int("id", id).Int("removed", n).Msg("product deleted")
	}
	return n, nil
}
