package dto

import "github.com/spec-kit/insurance-product-service/internal/domain"

// CreateProductRequest payload.
type CreateProductRequest struct {
	ProductCode string  `json:"productCode"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
}

// UpdateProductRequest payload.
type UpdateProductRequest struct {
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

// ProductResponse response.
type ProductResponse struct {
	ID          int64   `json:"id"`
	ProductCode string  `json:"productCode"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
}

// NewProductResponse maps the domain entity.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		ProductCode: product.ProductCode,
		Location:    product.Location,
		Price:       product.Price,
	}
}
