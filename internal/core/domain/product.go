package domain

import "fmt"

// Product is a single catalog entry.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SampleProducts returns the ten rows a fresh catalog is seeded with:
// ids 101..110, names "Product A".."Product J", prices 1000..5500 in steps of 500.
func SampleProducts() []Product {
	out := make([]Product, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, Product{
			ID:    101 + i,
			Name:  fmt.Sprintf("Product %c", 'A'+i),
			Price: float64(1000 + 500*i),
		})
	}
	return out
}
