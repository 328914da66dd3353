package response

import "github.com/lumiere-atelier/storefront/internal/product/repository"

type Product struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Material    string `json:"material"`
	Stone       string `json:"stone"`
	Occasion    string `json:"occasion"`
	Price       string `json:"price"`
	Image       string `json:"img"`
	Description string `json:"description"`
}

func FromProducts(products []repository.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, Product{
			ID:          product.CatalogID,
			Name:        product.Name,
			Category:    product.Category,
			Material:    product.Material,
			Stone:       product.Stone,
			Occasion:    product.Occasion,
			Price:       product.Price,
			Image:       product.Image,
			Description: product.Description,
		})
	}
	return out
}
