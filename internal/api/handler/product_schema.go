package handler

import "github.com/krm/catalog-api/internal/core/domain"

// productRequest is the body accepted by POST and PUT /products. An id of 0
// on POST asks the catalog to assign the next one.
type productRequest struct {
	ID    int     `json:"id"    validate:"gte=0"`
	Name  string  `json:"name"  validate:"required,max=200"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (r productRequest) toDomain() domain.Product {
	return domain.Product{ID: r.ID, Name: r.Name, Price: r.Price}
}
