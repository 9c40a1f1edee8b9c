package ports

import "github.com/krm/catalog-api/internal/core/domain"

// HomeRepository persists home records.
type HomeRepository interface {
	Repository[domain.Home, string]
}
