package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

var _ ports.HomeRepository = (*HomeRepository)(nil)

// HomeRepository implements ports.HomeRepository on the "Home" table.
type HomeRepository struct {
	db *gorm.DB
}

func NewHomeRepository(db *gorm.DB) *HomeRepository {
	return &HomeRepository{db: db}
}

// Migrate creates or updates the Home table.
func (r *HomeRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&domain.Home{})
}

func (r *HomeRepository) FindAll(ctx context.Context) ([]domain.Home, error) {
	var homes []domain.Home
	if err := r.db.WithContext(ctx).Find(&homes).Error; err != nil {
		return nil, fmt.Errorf("find homes: %w", err)
	}
	return homes, nil
}

func (r *HomeRepository) FindByID(ctx context.Context, id string) (domain.Home, bool, error) {
	var h domain.Home
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Home{}, false, nil
	}
	if err != nil {
		return domain.Home{}, false, fmt.Errorf("find home: %w", err)
	}
	return h, true, nil
}

// Save inserts h or overwrites the row with the same id.
func (r *HomeRepository) Save(ctx context.Context, h domain.Home) (domain.Home, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&h).Error
	if err != nil {
		return domain.Home{}, fmt.Errorf("save home: %w", err)
	}
	return h, nil
}
