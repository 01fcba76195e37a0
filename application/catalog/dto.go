package catalog

import "time"

// CreateProductRequest admin request to add a product
type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"min=0"`
	Category    string `json:"category" binding:"required"`
	Image       string `json:"image" binding:"required"`
	Description string `json:"description"`
}

// UpdateProductRequest admin request to replace a product's mutable fields
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"min=0"`
	Category    string `json:"category" binding:"required"`
	Image       string `json:"image" binding:"required"`
	Description string `json:"description"`
}

// ProductResponse product view model
type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
