package service

import (
	"context"
	"fmt"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

type HomeService struct {
	repo ports.HomeRepository
}

func NewHomeService(repo ports.HomeRepository) *HomeService {
	return &HomeService{repo: repo}
}

func (s *HomeService) List(ctx context.Context) ([]domain.Home, error) {
	return s.repo.FindAll(ctx)
}

func (s *HomeService) Get(ctx context.Context, id string) (domain.Home, error) {
	h, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Home{}, err
	}
	if !found {
		return domain.Home{}, fmt.Errorf("home %q: %w", id, domain.ErrHomeNotFound)
	}
	return h, nil
}

// Save upserts h by id.
func (s *HomeService) Save(ctx context.Context, h domain.Home) (domain.Home, error) {
	if h.ID == "" {
		return domain.Home{}, domain.ErrValidation
	}
	return s.repo.Save(ctx, h)
}
